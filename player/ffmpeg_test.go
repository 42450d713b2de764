package player

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func jpeg(payload string) []byte {
	return append(append(append([]byte{}, jpegSOI...), payload...), jpegEOI...)
}

func scanFrames(t *testing.T, data []byte, chunk int) [][]byte {
	t.Helper()

	scanner := bufio.NewScanner(&chunkReader{data: data, chunk: chunk})
	scanner.Split(SplitJPEG)

	var frames [][]byte
	for scanner.Scan() {
		frames = append(frames, bytes.Clone(scanner.Bytes()))
	}
	require.NoError(t, scanner.Err())
	return frames
}

// chunkReader hands out data a few bytes at a time to exercise frames spanning reads.
type chunkReader struct {
	data  []byte
	chunk int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), r.chunk)], r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestSplitJPEG(t *testing.T) {
	stream := bytes.Join([][]byte{jpeg("first"), jpeg("second"), jpeg("third")}, nil)

	for _, chunk := range []int{1, 2, 3, 7, 4096} {
		frames := scanFrames(t, stream, chunk)
		require.Len(t, frames, 3, "chunk size %d", chunk)
		require.Equal(t, jpeg("first"), frames[0])
		require.Equal(t, jpeg("second"), frames[1])
		require.Equal(t, jpeg("third"), frames[2])
	}
}

func TestSplitJPEGSkipsGarbage(t *testing.T) {
	stream := append([]byte("noise\xff"), jpeg("frame")...)
	stream = append(stream, "trailer"...)

	frames := scanFrames(t, stream, 5)
	require.Equal(t, [][]byte{jpeg("frame")}, frames)
}

func TestSplitJPEGDropsTruncatedFrame(t *testing.T) {
	stream := append(jpeg("whole"), jpegSOI...)
	stream = append(stream, "cut off"...)

	frames := scanFrames(t, stream, 4096)
	require.Equal(t, [][]byte{jpeg("whole")}, frames)
}

func TestSplitJPEGEmpty(t *testing.T) {
	require.Empty(t, scanFrames(t, nil, 16))
}

func TestFFmpegArgs(t *testing.T) {
	decoder := NewFFmpeg(0, " 640:-2 ")
	args := decoder.args("/wall/clip.mp4")

	require.Contains(t, args, "/wall/clip.mp4")
	require.Contains(t, args, "scale=640:-2")
	require.Equal(t, "pipe:1", args[len(args)-1])

	quality := args[indexOf(args, "-q:v")+1]
	require.Equal(t, "2", quality, "quality is clamped to ffmpeg's best value")

	require.NotContains(t, NewFFmpeg(5, "").args("x.mp4"), "-vf")
}

func indexOf(args []string, value string) int {
	for i, arg := range args {
		if arg == value {
			return i
		}
	}
	return -1
}
