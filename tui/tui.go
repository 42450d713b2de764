// Package tui renders the terminal status line of a running session.
//
// The terminal never shows frames: it reports which clip is on screen, how far it is into its
// duration and how the session went so far. Keys typed into the terminal are forwarded to the
// playback key queue, so ENTER and ESC work there just like in the video window.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbeissinger/vj-looper/catalog"
	"github.com/mbeissinger/vj-looper/playback"
)

// KeyPusher receives the key codes typed into the terminal.
type KeyPusher interface {
	Push(code int) bool
}

// Status is a bubbletea program observing a session.
type Status struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

var _ playback.Observer = (*Status)(nil)

// NewStatus prepares the status screen. Nothing is drawn before Start.
func NewStatus(keys KeyPusher, opts ...tea.ProgramOption) *Status {
	return &Status{
		program: tea.NewProgram(newModel(keys, time.Now), opts...),
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background.
func (s *Status) Start() {
	go func() {
		defer close(s.done)
		_, s.err = s.program.Run()
	}()
}

// Stop quits the program, restores the terminal and returns the error the program ended with.
func (s *Status) Stop() error {
	s.program.Quit()
	<-s.done
	return s.err
}

func (s *Status) OnCatalog(c catalog.Catalog) {
	s.program.Send(catalogMsg{root: c.Root(), clips: c.Len()})
}

func (s *Status) OnClipStart(path string, fps float64, target time.Duration) {
	s.program.Send(clipStartMsg{path: path, fps: fps, target: target})
}

func (s *Status) OnRewind(path string, rewinds int) {
	s.program.Send(rewindMsg{path: path, rewinds: rewinds})
}

func (s *Status) OnClipEnd(report playback.Report) {
	s.program.Send(clipEndMsg(report))
}

func (s *Status) OnClipError(path string, err error) {
	s.program.Send(clipErrorMsg{path: path, err: err})
}
