package player

import (
	"time"

	"github.com/mbeissinger/vj-looper/playback"
)

// Keys merges key presses from every input surface (the mpv window, the terminal) into one queue.
type Keys struct {
	codes chan int
}

var _ playback.KeySource = (*Keys)(nil)

// NewKeys returns a queue holding at most buffer unread presses.
func NewKeys(buffer int) *Keys {
	return &Keys{codes: make(chan int, max(buffer, 1))}
}

// Push queues a key code. Presses arriving while the queue is full are dropped.
func (k *Keys) Push(code int) bool {
	select {
	case k.codes <- code:
		return true
	default:
		return false
	}
}

// PollKey waits at most timeout for a queued press. A non-positive timeout does not wait.
func (k *Keys) PollKey(timeout time.Duration) (int, bool) {
	if timeout <= 0 {
		select {
		case code := <-k.codes:
			return code, true
		default:
			return 0, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code := <-k.codes:
		return code, true
	case <-timer.C:
		return 0, false
	}
}
