package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mbeissinger/vj-looper/log"
)

// Looper plays a single clip for a fixed wall-clock duration, rewinding the stream whenever it runs dry.
type Looper struct {
	Duration    time.Duration
	FallbackFPS float64
	Clock       Clock
	Pacer       *Pacer
	Display     Display
	Input       *Input
	Observer    Observer
}

// Play drives stream until the duration ceiling, a skip, a quit or cancellation of ctx.
//
// The ceiling is checked before every read, so no frame is requested once Duration has elapsed.
// Running out of data rewinds the stream and resets the pacing baseline. A pass over the data that
// yields no frame at all ends the clip with ErrClipStalled instead of rewinding forever.
// Play does not close stream.
func (l *Looper) Play(ctx context.Context, path string, stream Stream) (Report, error) {
	clock := l.Clock
	if clock == nil {
		clock = SystemClock
	}
	pacer := l.Pacer
	if pacer == nil {
		pacer = NewPacer(clock)
	}

	fps := stream.FrameRate()
	interval := FrameInterval(fps, l.FallbackFPS)
	observer := orNop(l.Observer)
	entry := log.WithFields(log.Fields{"clip": path})

	start := clock.Now()
	last := start
	report := Report{Path: path, FPS: fps}
	sincePass := 0

	observer.OnClipStart(path, fps, l.Duration)
	finish := func(end End, err error) (Report, error) {
		report.End = end
		report.Elapsed = clock.Now().Sub(start)
		observer.OnClipEnd(report)
		return report, err
	}

	for {
		if ctx.Err() != nil {
			return finish(EndCancelled, nil)
		}
		if clock.Now().Sub(start) > l.Duration {
			return finish(EndDuration, nil)
		}

		frame, err := stream.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				entry.Warnf("stream read failure, treating as end of stream: %v", err)
			}
			if sincePass == 0 {
				return finish(EndStalled, ErrClipStalled)
			}
			if err := stream.Rewind(); err != nil {
				return finish(EndStalled, &ClipOpenError{Path: path, Err: fmt.Errorf("rewind: %w", err)})
			}

			sincePass = 0
			report.Rewinds++
			last = clock.Now()
			observer.OnRewind(path, report.Rewinds)
			continue
		}

		last = pacer.Throttle(interval, last)
		if err := l.Display.Show(frame); err != nil {
			return finish(EndQuit, err)
		}
		report.Frames++
		sincePass++

		switch l.Input.Poll() {
		case ActionNext:
			return finish(EndSkip, nil)
		case ActionQuit:
			return finish(EndQuit, nil)
		}
	}
}
