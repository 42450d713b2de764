package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const noticeLifetime = 5 * time.Second

// notice is a transient line, e.g. the last skipped clip, that clears itself after noticeLifetime.
type notice struct {
	text string
	id   int
}

type clearNoticeMsg struct {
	id int
}

// set replaces the notice and schedules its removal. A newer notice outlives older timers.
func (n *notice) set(text string) tea.Cmd {
	n.id++
	n.text = text

	id := n.id
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

func (n *notice) clear(msg clearNoticeMsg) {
	if msg.id == n.id {
		n.text = ""
	}
}
