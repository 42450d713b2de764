package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/icon"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/mbeissinger/vj-looper/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (m *model) View() string {
	width := max(m.width-4, 20)
	truncate := style.Truncate(width)

	lines := []string{
		style.Title(constant.App) + " " + style.Faint(fmt.Sprintf("%s in %s", util.Quantify(m.clips, "clip", "clips"), m.root)),
		"",
	}

	if m.playing {
		m.progress.Width = width
		lines = append(lines,
			truncate(fmt.Sprintf("%s %s", icon.Get(icon.Video), style.Fg(color.Purple)(m.current))),
			truncate(style.Faint(fmt.Sprintf("%s  %s  %s", formatFPS(m.fps), util.Quantify(m.rewinds, "rewind", "rewinds"), formatProgress(m.elapsed(), m.target)))),
			m.progress.ViewAs(m.percent()),
		)
	} else if m.stopping {
		lines = append(lines, fmt.Sprintf("%s %s", icon.Get(icon.Quit), style.Faint("stopping")), "", "")
	} else {
		lines = append(lines, style.Faint("picking the next clip"), "", "")
	}

	lines = append(lines,
		"",
		truncate(fmt.Sprintf("%s %d played  %s %d skipped  %s %d failed",
			icon.Get(icon.Loop), m.played,
			icon.Get(icon.Skip), m.skipped,
			icon.Get(icon.Fail), m.failed,
		)),
	)

	if m.notice.text != "" {
		lines = append(lines, truncate(style.ErrorTitle("skipped")+" "+style.Fg(color.Red)(m.notice.text)))
	}

	lines = append(lines, "", m.helpC.View(m.keymap))
	return paddingStyle.Render(strings.Join(lines, "\n"))
}

func formatFPS(fps float64) string {
	if fps <= 0 {
		return "fps unknown"
	}
	return fmt.Sprintf("%.2f fps", fps)
}

func formatProgress(elapsed, target time.Duration) string {
	return fmt.Sprintf("%s / %s", elapsed.Truncate(time.Second), target.Truncate(time.Second))
}
