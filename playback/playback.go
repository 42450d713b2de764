// Package playback schedules randomized, timed, looping clip playback.
//
// A Session builds the catalog once and then repeatedly picks a clip, opens a Stream on it and hands it to
// a Looper. The Looper paces frames to the clip's native rate, rewinds the stream whenever it runs dry before
// the target duration, and stops at the duration ceiling or when the user skips or quits.
// Decoding, display and key polling are collaborators behind the interfaces below.
package playback

import (
	"context"
	"fmt"
	"time"
)

// Stream is an open, decodable clip.
type Stream interface {
	// FrameRate is the native rate reported by the container. Zero means unknown.
	FrameRate() float64
	// ReadFrame returns the next encoded frame, or io.EOF once the data is exhausted.
	ReadFrame() ([]byte, error)
	// Rewind repositions the stream on its first frame.
	Rewind() error
	// Close releases the decoder. It is safe to call more than once.
	Close() error
}

// Opener opens streams on clip paths.
type Opener interface {
	Open(ctx context.Context, path string) (Stream, error)
}

// Display renders frames on the session's output surface.
type Display interface {
	Show(frame []byte) error
	// Close tears the surface down. It is safe to call more than once.
	Close() error
}

// Titler is implemented by displays able to label the clip on screen.
type Titler interface {
	SetTitle(title string) error
}

// DisplayFactory opens the session's display surface.
type DisplayFactory func(ctx context.Context) (Display, error)

// End tells why a clip stopped.
type End int

const (
	EndDuration End = iota
	EndSkip
	EndQuit
	EndStalled
	EndCancelled
)

func (e End) String() string {
	switch e {
	case EndDuration:
		return "duration"
	case EndSkip:
		return "skip"
	case EndQuit:
		return "quit"
	case EndStalled:
		return "stalled"
	case EndCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("End(%d)", int(e))
	}
}

// Report summarizes one played clip.
type Report struct {
	Path    string
	FPS     float64
	Frames  int
	Rewinds int
	Elapsed time.Duration
	End     End
}
