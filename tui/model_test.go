package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/playback"
	. "github.com/smartystreets/goconvey/convey"
)

type pushed struct {
	codes []int
}

func (p *pushed) Push(code int) bool {
	p.codes = append(p.codes, code)
	return true
}

func TestModel(t *testing.T) {
	Convey("Given a status model", t, func() {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		keys := &pushed{}
		m := newModel(keys, func() time.Time { return now })
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
		m.Update(catalogMsg{root: "/wall", clips: 3})

		Convey("It shows the catalog", func() {
			So(m.View(), ShouldContainSubstring, "3 clips in /wall")
		})

		Convey("It forwards terminal keys to the playback queue", func() {
			m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
			So(keys.codes, ShouldResemble, []int{constant.KeyCR, constant.KeyEscape, constant.KeyCtrlC})
		})

		Convey("When a clip starts", func() {
			m.Update(clipStartMsg{path: "/wall/nested/b.mp4", fps: 25, target: 30 * time.Second})

			Convey("It shows the clip relative to the root", func() {
				view := m.View()
				So(view, ShouldContainSubstring, "nested/b.mp4")
				So(view, ShouldContainSubstring, "25.00 fps")
			})

			Convey("Progress follows the clock and stops at the target", func() {
				So(m.percent(), ShouldEqual, 0)

				now = now.Add(15 * time.Second)
				So(m.percent(), ShouldAlmostEqual, 0.5, 0.0001)
				So(m.View(), ShouldContainSubstring, "15s / 30s")

				now = now.Add(time.Minute)
				So(m.percent(), ShouldEqual, 1)
			})

			Convey("Rewinds are counted", func() {
				m.Update(rewindMsg{path: "/wall/nested/b.mp4", rewinds: 2})
				So(m.View(), ShouldContainSubstring, "2 rewinds")
			})

			Convey("Ends are tallied by kind", func() {
				m.Update(clipEndMsg(playback.Report{End: playback.EndSkip}))
				m.Update(clipEndMsg(playback.Report{End: playback.EndDuration}))
				m.Update(clipEndMsg(playback.Report{End: playback.EndStalled}))
				So(m.played, ShouldEqual, 2)
				So(m.skipped, ShouldEqual, 1)
				So(m.failed, ShouldEqual, 0)
				So(m.playing, ShouldBeFalse)
				So(m.percent(), ShouldEqual, 0)
				So(m.View(), ShouldContainSubstring, "picking the next clip")
			})

			Convey("A quit is shown as stopping", func() {
				m.Update(clipEndMsg(playback.Report{End: playback.EndQuit}))
				So(m.played, ShouldEqual, 1)
				So(m.View(), ShouldContainSubstring, "stopping")
			})
		})

		Convey("Clip errors are shown for a while", func() {
			_, cmd := m.Update(clipErrorMsg{path: "/wall/a.mp4", err: errors.New("moov atom not found")})
			So(cmd, ShouldNotBeNil)
			So(m.failed, ShouldEqual, 1)
			So(m.View(), ShouldContainSubstring, "a.mp4: moov atom not found")

			Convey("A stale timer keeps a newer notice", func() {
				stale := clearNoticeMsg{id: m.notice.id}
				m.Update(clipErrorMsg{path: "/wall/b.mp4", err: errors.New("no video stream")})
				m.Update(stale)
				So(m.View(), ShouldContainSubstring, "b.mp4: no video stream")
			})

			Convey("The notice clears itself", func() {
				m.Update(clearNoticeMsg{id: m.notice.id})
				So(m.View(), ShouldNotContainSubstring, "moov atom")
			})
		})

		Convey("An unknown frame rate is spelled out", func() {
			m.Update(clipStartMsg{path: "/wall/a.mp4", target: time.Second})
			So(m.View(), ShouldContainSubstring, "fps unknown")
		})
	})
}
