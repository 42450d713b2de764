package player

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/mbeissinger/vj-looper/playback"
)

const (
	// maxFrameSize bounds a single JPEG frame; 4K frames at low quality stay well below it.
	maxFrameSize = 64 << 20
	stopGrace    = 2 * time.Second
)

var (
	jpegSOI = []byte{0xFF, 0xD8}
	jpegEOI = []byte{0xFF, 0xD9}
)

// FFmpeg opens clips by spawning an ffmpeg process that writes MJPEG frames to a pipe.
type FFmpeg struct {
	// Binary and ProbeBinary default to ffmpeg and ffprobe on PATH.
	Binary      string
	ProbeBinary string
	// Quality is ffmpeg's -q:v, 2 (best) to 31 (worst).
	Quality int
	// Scale is an optional scale filter argument such as "1280:-2".
	Scale string
}

var _ playback.Opener = (*FFmpeg)(nil)

// NewFFmpeg returns a decoder using the programs found on PATH.
func NewFFmpeg(quality int, scale string) *FFmpeg {
	return &FFmpeg{
		Binary:      constant.FFmpeg,
		ProbeBinary: constant.FFprobe,
		Quality:     quality,
		Scale:       scale,
	}
}

// Open probes path and starts decoding it. A clip ffprobe cannot parse fails here.
func (f *FFmpeg) Open(ctx context.Context, path string) (playback.Stream, error) {
	probe, err := ProbeClip(ctx, f.ProbeBinary, path)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		ctx:  ctx,
		path: path,
		fps:  probe.FPS.OrEmpty(),
		bin:  f.Binary,
		args: f.args(path),
	}
	if err := s.start(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"clip":  path,
		"codec": probe.Codec,
		"size":  fmt.Sprintf("%dx%d", probe.Width, probe.Height),
		"fps":   s.fps,
	}).Debug("decoder started")
	return s, nil
}

func (f *FFmpeg) args(path string) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", path,
		"-an", "-sn", "-dn",
		"-f", "image2pipe",
		"-c:v", "mjpeg",
		"-q:v", strconv.Itoa(max(f.Quality, 2)),
	}
	if scale := strings.TrimSpace(f.Scale); scale != "" {
		args = append(args, "-vf", "scale="+scale)
	}
	return append(args, "pipe:1")
}

// Stream is a running ffmpeg decode of one clip.
// Rewinding restarts the process, the image2pipe muxer cannot seek.
type Stream struct {
	ctx  context.Context
	path string
	fps  float64
	bin  string
	args []string

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdout  *os.File
	stderr  *bytes.Buffer
	scanner *bufio.Scanner
	exited  chan struct{}
	closed  bool
}

var _ playback.Stream = (*Stream)(nil)

func (s *Stream) FrameRate() float64 {
	return s.fps
}

// ReadFrame returns the next JPEG frame. The slice is only valid until the next call.
func (s *Stream) ReadFrame() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, io.ErrClosedPipe
	}

	if s.scanner.Scan() {
		return s.scanner.Bytes(), nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}

	<-s.exited
	if state := s.cmd.ProcessState; state != nil && !state.Success() && s.ctx.Err() == nil {
		return nil, fmt.Errorf("%s exited with %d: %s", constant.FFmpeg, state.ExitCode(), lastLine(s.stderr.String()))
	}
	return nil, io.EOF
}

// Rewind stops the current decode and starts over from the first frame.
func (s *Stream) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return io.ErrClosedPipe
	}

	s.stop()
	return s.start()
}

// Close stops the decoder. Further calls do nothing.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	return nil
}

func (s *Stream) start() error {
	cmd := exec.CommandContext(s.ctx, s.bin, s.args...)
	detach(cmd)

	// A plain os.Pipe keeps the read end ours, so reaping the process never cuts off buffered frames.
	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("frame pipe: %w", err)
	}
	stderr := new(bytes.Buffer)
	cmd.Stdout = pw
	cmd.Stderr = stderr

	err = cmd.Start()
	_ = pw.Close()
	if err != nil {
		_ = pr.Close()
		return fmt.Errorf("start %s: %w", constant.FFmpeg, err)
	}

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 1<<20), maxFrameSize)
	scanner.Split(SplitJPEG)

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	s.cmd, s.stdout, s.stderr, s.scanner, s.exited = cmd, pr, stderr, scanner, exited
	return nil
}

func (s *Stream) stop() {
	if s.cmd == nil {
		return
	}

	_ = s.stdout.Close()
	select {
	case <-s.exited:
	default:
		terminate(s.cmd, s.exited, stopGrace)
	}
	s.cmd = nil
}

// SplitJPEG is a bufio.SplitFunc yielding complete JPEG images, from SOI to EOI, out of a concatenated stream.
// Bytes outside of an image are discarded and a truncated trailing image is dropped.
func SplitJPEG(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := bytes.Index(data, jpegSOI)
	if start < 0 {
		if atEOF || len(data) == 0 {
			return len(data), nil, nil
		}
		// Keep a trailing 0xFF, it may be the first half of a marker.
		return len(data) - 1, nil, nil
	}

	end := bytes.Index(data[start+len(jpegSOI):], jpegEOI)
	if end >= 0 {
		stop := start + len(jpegSOI) + end + len(jpegEOI)
		return stop, data[start:stop], nil
	}

	if atEOF {
		return len(data), nil, nil
	}
	return start, nil, nil
}
