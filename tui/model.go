package tui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/playback"
	"github.com/mbeissinger/vj-looper/util"
)

const refreshInterval = 100 * time.Millisecond

type (
	catalogMsg struct {
		root  string
		clips int
	}
	clipStartMsg struct {
		path   string
		fps    float64
		target time.Duration
	}
	rewindMsg struct {
		path    string
		rewinds int
	}
	clipEndMsg   playback.Report
	clipErrorMsg struct {
		path string
		err  error
	}
	tickMsg time.Time
)

type model struct {
	keymap   keymap
	helpC    help.Model
	progress progress.Model
	keys     KeyPusher
	now      func() time.Time

	width int

	root  string
	clips int

	current  string
	fps      float64
	target   time.Duration
	started  time.Time
	rewinds  int
	playing  bool
	stopping bool

	played, skipped, failed int
	notice                  notice
}

func newModel(keys KeyPusher, now func() time.Time) *model {
	return &model{
		keymap:   newKeymap(),
		helpC:    help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		keys:     keys,
		now:      now,
		width:    util.TerminalWidth(80),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.helpC.Width = msg.Width
	case tea.KeyMsg:
		m.forward(msg)
	case tickMsg:
		return m, tick()
	case catalogMsg:
		m.root, m.clips = msg.root, msg.clips
	case clipStartMsg:
		m.current = m.relative(msg.path)
		m.fps, m.target = msg.fps, msg.target
		m.started = m.now()
		m.rewinds = 0
		m.playing = true
	case rewindMsg:
		m.rewinds = msg.rewinds
	case clipEndMsg:
		m.playing = false
		switch msg.End {
		case playback.EndSkip:
			m.skipped++
			m.played++
		case playback.EndQuit, playback.EndCancelled:
			m.played++
			m.stopping = true
		case playback.EndStalled:
			// counted by the clipErrorMsg that follows
		default:
			m.played++
		}
	case clipErrorMsg:
		m.failed++
		return m, m.notice.set(m.relative(msg.path) + ": " + msg.err.Error())
	case clearNoticeMsg:
		m.notice.clear(msg)
	}

	return m, nil
}

// forward hands terminal keys to the playback queue; the session decides what they mean.
func (m *model) forward(msg tea.KeyMsg) {
	if m.keys == nil {
		return
	}

	switch {
	case key.Matches(msg, m.keymap.next):
		m.keys.Push(constant.KeyCR)
	case key.Matches(msg, m.keymap.quit):
		m.keys.Push(constant.KeyEscape)
	case key.Matches(msg, m.keymap.forceQuit):
		m.keys.Push(constant.KeyCtrlC)
	}
}

func (m *model) relative(path string) string {
	if m.root == "" {
		return path
	}
	if rel, err := filepath.Rel(m.root, path); err == nil {
		return rel
	}
	return path
}

// elapsed is how far the current clip is into its duration, capped at the target.
func (m *model) elapsed() time.Duration {
	if !m.playing {
		return 0
	}
	return util.Clamp(m.now().Sub(m.started), 0, m.target)
}

func (m *model) percent() float64 {
	if m.target <= 0 {
		return 0
	}
	return float64(m.elapsed()) / float64(m.target)
}
