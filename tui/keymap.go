package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/style"
)

type keymap struct {
	next, quit, forceQuit key.Binding
}

func newKeymap() keymap {
	return keymap{
		next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("next clip")),
		),
		quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.next, k.quit, k.forceQuit}}
}
