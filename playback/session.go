package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbeissinger/vj-looper/catalog"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/mbeissinger/vj-looper/util"
)

// Config is the immutable configuration of a session.
type Config struct {
	// Root is the directory searched for clips.
	Root string
	// Formats are the accepted file name suffixes, matched case-sensitively.
	Formats []string
	// Filter optionally narrows the catalog with a fuzzy match on relative paths.
	Filter string
	// Duration is the wall-clock time each clip stays on screen.
	Duration time.Duration
	// FallbackFPS is used when a stream reports no usable frame rate.
	FallbackFPS float64
	// PollTimeout bounds the wait for a key press after each frame.
	PollTimeout time.Duration
	// MaxFailures is the number of consecutive unplayable clips tolerated. Zero tolerates any number.
	MaxFailures int
	// Seed seeds clip selection. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns the stock configuration for root.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		Formats:     []string{".mp4"},
		Duration:    30 * time.Second,
		FallbackFPS: 30,
		PollTimeout: time.Millisecond,
		MaxFailures: 10,
	}
}

// Session plays random clips from a directory until cancelled or quit.
type Session struct {
	Config      Config
	Opener      Opener
	OpenDisplay DisplayFactory
	Keys        KeySource
	Observer    Observer
	Clock       Clock
}

// Run validates the root, builds the catalog and plays clips until the user quits or ctx is cancelled.
//
// An invalid root or an empty catalog fail before the display is opened. Clips that cannot be opened
// or never yield a frame are skipped. A user quit, a closed display window and cancellation of ctx
// are clean terminations and return nil. Every stream and the display are closed exactly once.
func (s *Session) Run(ctx context.Context) error {
	root, err := catalog.ValidateRoot(s.Config.Root)
	if err != nil {
		return err
	}

	clips, err := catalog.Build(root, s.Config.Formats)
	if err != nil {
		return err
	}
	clips = clips.Filter(s.Config.Filter)
	if clips.IsEmpty() {
		return fmt.Errorf("%w in %s (formats %v)", catalog.ErrEmptyCatalog, root, s.Config.Formats)
	}

	observer := orNop(s.Observer)
	observer.OnCatalog(clips)

	ctx, quit := context.WithCancel(ctx)
	defer quit()

	display, err := s.OpenDisplay(ctx)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer func() {
		if err := display.Close(); err != nil {
			log.Warnf("close display: %v", err)
		}
	}()

	clock := s.Clock
	if clock == nil {
		clock = SystemClock
	}

	looper := &Looper{
		Duration:    s.Config.Duration,
		FallbackFPS: s.Config.FallbackFPS,
		Clock:       clock,
		Pacer:       NewPacer(clock),
		Display:     display,
		Input:       &Input{Keys: s.Keys, Timeout: s.Config.PollTimeout},
		Observer:    observer,
	}
	selector := catalog.NewSelector(s.Config.Seed)

	failures := 0
	for ctx.Err() == nil {
		path, err := selector.Pick(clips)
		if err != nil {
			return err
		}

		report, err := s.playClip(ctx, looper, display, clips.Rel(path), path)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrDisplayClosed):
			return nil
		case err == nil:
			failures = 0
		case Recoverable(err):
			failures++
			observer.OnClipError(path, err)
			if s.Config.MaxFailures > 0 && failures >= s.Config.MaxFailures {
				return fmt.Errorf("%w (%s): %v", ErrTooManyFailures, util.Quantify(failures, "clip", "clips"), err)
			}
		default:
			return err
		}

		if report.End == EndQuit {
			quit()
		}
	}

	return nil
}

// playClip owns the stream of one clip: it is opened here and closed on every way out.
func (s *Session) playClip(ctx context.Context, looper *Looper, display Display, title, path string) (Report, error) {
	stream, err := s.Opener.Open(ctx, path)
	if err != nil {
		return Report{Path: path}, &ClipOpenError{Path: path, Err: err}
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.WithFields(log.Fields{"clip": path}).Warnf("close stream: %v", err)
		}
	}()

	if titler, ok := display.(Titler); ok {
		if err := titler.SetTitle(title); err != nil {
			log.WithFields(log.Fields{"clip": path}).Debugf("set title: %v", err)
		}
	}

	return looper.Play(ctx, path, stream)
}
