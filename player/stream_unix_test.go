//go:build !windows

package player

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// shellStream runs script with sh in place of ffmpeg.
func shellStream(ctx context.Context, script string) *Stream {
	return &Stream{ctx: ctx, path: "clip.mp4", fps: 25, bin: "sh", args: []string{"-c", script}}
}

const twoFrames = `printf '\377\330one\377\331\377\330two\377\331'`

func TestStreamReadsAndRewinds(t *testing.T) {
	s := shellStream(context.Background(), twoFrames)
	require.NoError(t, s.start())
	defer s.Close()

	for pass := 0; pass < 2; pass++ {
		frame, err := s.ReadFrame()
		require.NoError(t, err)
		require.Equal(t, jpeg("one"), frame)

		frame, err = s.ReadFrame()
		require.NoError(t, err)
		require.Equal(t, jpeg("two"), frame)

		_, err = s.ReadFrame()
		require.ErrorIs(t, err, io.EOF)

		require.NoError(t, s.Rewind())
	}
}

func TestStreamReportsDecoderFailure(t *testing.T) {
	s := shellStream(context.Background(), `echo 'Invalid data found' >&2; exit 3`)
	require.NoError(t, s.start())
	defer s.Close()

	_, err := s.ReadFrame()
	require.Error(t, err)
	require.False(t, errors.Is(err, io.EOF))
	require.Contains(t, err.Error(), "exited with 3")
	require.Contains(t, err.Error(), "Invalid data found")
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	s := shellStream(context.Background(), `sleep 30`)
	require.NoError(t, s.start())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.ReadFrame()
	require.ErrorIs(t, err, io.ErrClosedPipe)
	require.ErrorIs(t, s.Rewind(), io.ErrClosedPipe)
}

func TestStreamStartFailure(t *testing.T) {
	s := &Stream{ctx: context.Background(), bin: "/nonexistent/ffmpeg"}
	require.Error(t, s.start())
}
