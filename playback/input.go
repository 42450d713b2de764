package playback

import (
	"time"

	"github.com/mbeissinger/vj-looper/constant"
)

// Action is what the user asked for after a frame.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// KeySource delivers key presses as terminal key codes.
type KeySource interface {
	// PollKey waits at most timeout for a key press.
	PollKey(timeout time.Duration) (code int, ok bool)
}

// Classify maps a key code to an action: escape quits, enter advances.
// Ctrl-C quits as well because raw terminals deliver it as a byte instead of a signal.
func Classify(code int) Action {
	switch code {
	case constant.KeyEscape, constant.KeyCtrlC:
		return ActionQuit
	case constant.KeyLF, constant.KeyCR:
		return ActionNext
	default:
		return ActionNone
	}
}

// Input polls a key source once per displayed frame.
type Input struct {
	Keys    KeySource
	Timeout time.Duration
}

// Poll waits briefly for one key press and classifies it.
func (in *Input) Poll() Action {
	if in == nil || in.Keys == nil {
		return ActionNone
	}

	code, ok := in.Keys.PollKey(in.Timeout)
	if !ok {
		return ActionNone
	}
	return Classify(code)
}
