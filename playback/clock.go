package playback

import "time"

// Clock is the time source of the playback loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock reads the wall clock. Its readings carry the monotonic component, so intervals survive clock adjustments.
var SystemClock Clock = systemClock{}
