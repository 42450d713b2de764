package playback

import (
	"math"
	"time"
)

const (
	// MaxFPS bounds the frame rates trusted from a stream; containers sometimes report timebase rates like 90000/1.
	MaxFPS = 240.0

	// DefaultInterval is used when neither the stream nor the configured fallback yields a usable frame rate.
	DefaultInterval = time.Second / 30

	// DefaultStep is the longest single sleep of the pacer.
	DefaultStep = time.Millisecond
)

// FrameInterval converts a frame rate into the minimum spacing between deliveries.
// Zero, negative, non-finite or implausibly high rates fall back to fallback, then to DefaultInterval.
func FrameInterval(fps, fallback float64) time.Duration {
	for _, rate := range []float64{fps, fallback} {
		if usableRate(rate) {
			return time.Duration(float64(time.Second) / rate)
		}
	}
	return DefaultInterval
}

func usableRate(rate float64) bool {
	return rate > 0 && rate <= MaxFPS && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}

// Pacer holds frame delivery back to a stream's native rate.
type Pacer struct {
	Clock Clock
	// Step is the longest single sleep. Small steps keep the overshoot below a few milliseconds.
	Step time.Duration
}

// NewPacer returns a pacer sleeping at most DefaultStep at a time.
func NewPacer(clock Clock) *Pacer {
	return &Pacer{Clock: clock, Step: DefaultStep}
}

// Throttle blocks until at least interval has elapsed since last and returns the time it let the frame through.
// The returned time is the baseline for the next call.
func (p *Pacer) Throttle(interval time.Duration, last time.Time) time.Time {
	step := p.Step
	if step <= 0 {
		step = DefaultStep
	}

	deadline := last.Add(interval)
	for {
		now := p.Clock.Now()
		remaining := deadline.Sub(now)
		if remaining <= 0 {
			return now
		}
		p.Clock.Sleep(min(remaining, step))
	}
}
