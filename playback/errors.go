package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrClipStalled is returned when a clip reaches the end of its data without having produced a single frame.
	ErrClipStalled = errors.New("clip produced no frames")

	// ErrTooManyFailures is returned when too many consecutive clips could not be played.
	ErrTooManyFailures = errors.New("too many unplayable clips in a row")

	// ErrDisplayClosed is returned by a Display whose surface went away, e.g. the window was closed by the user.
	ErrDisplayClosed = errors.New("display closed")
)

// ClipOpenError reports a clip that could not be opened for decoding.
// The session skips such clips instead of stopping.
type ClipOpenError struct {
	Path string
	Err  error
}

func (e *ClipOpenError) Error() string {
	return fmt.Sprintf("open clip %s: %v", e.Path, e.Err)
}

func (e *ClipOpenError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether err only affects the current clip.
func Recoverable(err error) bool {
	var openErr *ClipOpenError
	return errors.As(err, &openErr) || errors.Is(err, ErrClipStalled)
}
