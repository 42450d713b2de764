package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/filesystem"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/mbeissinger/vj-looper/playback"
	"github.com/mbeissinger/vj-looper/where"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 100 * time.Millisecond
	exitGrace         = 3 * time.Second
)

// DisplayOptions configures the mpv window.
type DisplayOptions struct {
	// Binary defaults to mpv on PATH.
	Binary     string
	Title      string
	Fullscreen bool
}

// MPV is a display window backed by one mpv process reading MJPEG frames from its stdin.
// The window's ESC and ENTER bindings are delivered to a Keys queue.
type MPV struct {
	opts       DisplayOptions
	socketPath string
	inputConf  string
	ipc        IPC
	events     *EventListener

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	exited chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
}

var (
	_ playback.Display = (*MPV)(nil)
	_ playback.Titler  = (*MPV)(nil)
)

// OpenMPV starts the window and waits for its IPC socket. Key presses in the window are pushed to keys.
func OpenMPV(ctx context.Context, opts DisplayOptions, keys *Keys) (*MPV, error) {
	if opts.Binary == "" {
		opts.Binary = constant.MPV
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return nil, fmt.Errorf("generate session name: %w", err)
	}
	name := fmt.Sprintf("%s-%x", constant.App, suffix)

	m := &MPV{
		opts:      opts,
		inputConf: filepath.Join(where.Temp(), name+".conf"),
		exited:    make(chan struct{}),
	}
	if runtime.GOOS != constant.Windows {
		m.socketPath = filepath.Join(where.Temp(), name+".sock")
		m.ipc = IPC{socket: m.socketPath}
	}

	if err := filesystem.API().WriteFile(m.inputConf, []byte(inputBindings()), 0o600); err != nil {
		return nil, fmt.Errorf("write input bindings: %w", err)
	}

	m.cmd = exec.CommandContext(ctx, opts.Binary, m.args()...)
	detach(m.cmd)

	stdin, err := m.cmd.StdinPipe()
	if err != nil {
		m.cleanup()
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	m.stdin = stdin

	if err := m.cmd.Start(); err != nil {
		m.cleanup()
		return nil, fmt.Errorf("start %s: %w", constant.MPV, err)
	}

	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if m.socketPath == "" {
		return m, nil
	}

	if err := m.waitForSocket(ctx); err != nil {
		log.Warnf("killing %s: %v", constant.MPV, err)
		_ = m.Close()
		return nil, err
	}

	m.events = NewEventListener(m.socketPath, func(event Event) {
		if code, ok := keyForEvent(event); ok {
			keys.Push(code)
		}
	})
	if err := m.events.Start(); err != nil {
		// The window still works without bindings; the terminal keeps control.
		log.Warnf("mpv key bindings unavailable: %v", err)
	}

	return m, nil
}

func (m *MPV) args() []string {
	title := sanitizeTitle(m.opts.Title)
	if title == "" {
		title = constant.App
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--title=" + title,
		"--force-window=yes",
		"--idle=no",
		"--keep-open=no",
		"--osc=no",
		"--osd-level=0",
		"--untimed",
		"--cache=no",
		"--demuxer-readahead-secs=0",
		"--demuxer-lavf-format=mjpeg",
		"--no-input-default-bindings",
		"--input-conf=" + m.inputConf,
	}
	if m.socketPath != "" {
		args = append(args, "--input-ipc-server="+m.socketPath)
	}
	if m.opts.Fullscreen {
		args = append(args, "--fs")
	}
	return append(args, "-")
}

// inputBindings maps the window keys onto script messages observed by the event listener.
func inputBindings() string {
	var b strings.Builder
	for _, binding := range [][2]string{
		{"ESC", constant.MessageQuit},
		{"ENTER", constant.MessageNext},
		{"KP_ENTER", constant.MessageNext},
	} {
		fmt.Fprintf(&b, "%s script-message %s\n", binding[0], binding[1])
	}
	b.WriteString("CLOSE_WIN quit\n")
	return b.String()
}

// keyForEvent translates a window binding into the key code a terminal would have produced.
func keyForEvent(event Event) (int, bool) {
	if event.Name != "client-message" || len(event.Args) == 0 {
		return 0, false
	}

	switch event.Args[0] {
	case constant.MessageQuit:
		return constant.KeyEscape, true
	case constant.MessageNext:
		return constant.KeyCR, true
	default:
		return 0, false
	}
}

func (m *MPV) waitForSocket(ctx context.Context) error {
	for range socketWaitRetries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return fmt.Errorf("%s exited before its socket was ready", constant.MPV)
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Show writes one JPEG frame to the window. It returns playback.ErrDisplayClosed once mpv is gone.
func (m *MPV) Show(frame []byte) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	select {
	case <-m.exited:
		return playback.ErrDisplayClosed
	default:
	}

	if _, err := m.stdin.Write(frame); err != nil {
		if errors.Is(err, syscall.EPIPE) || m.exitedWithin(100*time.Millisecond) {
			return playback.ErrDisplayClosed
		}
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (m *MPV) exitedWithin(d time.Duration) bool {
	select {
	case <-m.exited:
		return true
	case <-time.After(d):
		return false
	}
}

// SetTitle labels the window with the clip being played.
func (m *MPV) SetTitle(title string) error {
	if m.socketPath == "" {
		return nil
	}

	full := sanitizeTitle(m.opts.Title)
	if full == "" {
		full = constant.App
	}
	if title = sanitizeTitle(title); title != "" {
		full = fmt.Sprintf("%s - %s", full, title)
	}
	_, err := m.ipc.Command("set_property", "title", full)
	return err
}

// Done is closed once the mpv process has exited.
func (m *MPV) Done() <-chan struct{} {
	return m.exited
}

// Close ends the stream on mpv's stdin, waits for the window to go away and removes the session files.
// It is safe to call more than once.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		if m.events != nil {
			m.events.Stop()
		}

		m.writeMu.Lock()
		_ = m.stdin.Close()
		m.writeMu.Unlock()

		if !m.exitedWithin(exitGrace) {
			if m.socketPath != "" {
				_, _ = m.ipc.Command("quit")
			}
			terminate(m.cmd, m.exited, exitGrace)
		}

		m.cleanup()
	})
	return nil
}

func (m *MPV) cleanup() {
	for _, path := range []string{m.socketPath, m.inputConf} {
		if path == "" {
			continue
		}
		if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Debugf("remove %s: %v", path, err)
		}
	}
}

// sanitizeTitle flattens a title onto one line for mpv's property parser.
func sanitizeTitle(title string) string {
	title = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(title)
}
