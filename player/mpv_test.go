package player

import (
	"strings"
	"testing"
	"time"

	"github.com/mbeissinger/vj-looper/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMPV(t *testing.T) {
	Convey("MPV", t, func() {
		Convey("args", func() {
			m := &MPV{
				opts:       DisplayOptions{Title: "wall\none", Fullscreen: true},
				socketPath: "/tmp/vjlooper/test.sock",
				inputConf:  "/tmp/vjlooper/test.conf",
			}
			args := m.args()

			Convey("Should read frames from stdin without timing them", func() {
				So(args[len(args)-1], ShouldEqual, "-")
				So(args, ShouldContain, "--untimed")
				So(args, ShouldContain, "--demuxer-lavf-format=mjpeg")
			})

			Convey("Should wire the bindings and the IPC socket", func() {
				So(args, ShouldContain, "--input-conf=/tmp/vjlooper/test.conf")
				So(args, ShouldContain, "--input-ipc-server=/tmp/vjlooper/test.sock")
				So(args, ShouldContain, "--no-input-default-bindings")
			})

			Convey("Should honour the window options", func() {
				So(args, ShouldContain, "--fs")
				So(args, ShouldContain, "--title=wall one")
			})

			Convey("Should fall back to the app name as title", func() {
				m.opts = DisplayOptions{}
				So(m.args(), ShouldContain, "--title="+constant.App)
				So(m.args(), ShouldNotContain, "--fs")
			})
		})

		Convey("inputBindings", func() {
			conf := inputBindings()

			Convey("Should bind escape to quit and enter to next", func() {
				So(conf, ShouldContainSubstring, "ESC script-message "+constant.MessageQuit+"\n")
				So(conf, ShouldContainSubstring, "ENTER script-message "+constant.MessageNext+"\n")
				So(conf, ShouldContainSubstring, "KP_ENTER script-message "+constant.MessageNext+"\n")
			})
		})

		Convey("keyForEvent", func() {
			Convey("Should translate window bindings into key codes", func() {
				code, ok := keyForEvent(Event{Name: "client-message", Args: []string{constant.MessageQuit}})
				So(ok, ShouldBeTrue)
				So(code, ShouldEqual, constant.KeyEscape)

				code, ok = keyForEvent(Event{Name: "client-message", Args: []string{constant.MessageNext}})
				So(ok, ShouldBeTrue)
				So(code, ShouldEqual, constant.KeyCR)
			})

			Convey("Should ignore anything else", func() {
				_, ok := keyForEvent(Event{Name: "client-message", Args: []string{"other-script"}})
				So(ok, ShouldBeFalse)
				_, ok = keyForEvent(Event{Name: "client-message"})
				So(ok, ShouldBeFalse)
				_, ok = keyForEvent(Event{Name: "shutdown"})
				So(ok, ShouldBeFalse)
			})
		})

		Convey("sanitizeTitle", func() {
			So(sanitizeTitle("  clips/a.mp4\r\n"), ShouldEqual, "clips/a.mp4")
			So(sanitizeTitle("a\tb\x00c"), ShouldEqual, "a bc")
			So(strings.TrimSpace(sanitizeTitle("\n\n")), ShouldBeEmpty)
		})
	})
}

func TestParseEvent(t *testing.T) {
	Convey("parseEvent", t, func() {
		Convey("Should decode client messages", func() {
			event, ok := parseEvent([]byte(`{"event":"client-message","args":["vjlooper-next"]}`))
			So(ok, ShouldBeTrue)
			So(event.Name, ShouldEqual, "client-message")
			So(event.Args, ShouldResemble, []string{"vjlooper-next"})
		})

		Convey("Should skip replies and junk", func() {
			_, ok := parseEvent([]byte(`{"data":null,"error":"success","request_id":4}`))
			So(ok, ShouldBeFalse)
			_, ok = parseEvent([]byte(`not json`))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("Given a key queue", t, func() {
		keys := NewKeys(2)

		Convey("Presses come out in order", func() {
			So(keys.Push('a'), ShouldBeTrue)
			So(keys.Push('b'), ShouldBeTrue)

			code, ok := keys.PollKey(0)
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, 'a')

			code, ok = keys.PollKey(time.Millisecond)
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, 'b')
		})

		Convey("A full queue drops presses", func() {
			keys.Push(1)
			keys.Push(2)
			So(keys.Push(3), ShouldBeFalse)
		})

		Convey("Polling an empty queue times out", func() {
			start := time.Now()
			_, ok := keys.PollKey(5 * time.Millisecond)
			So(ok, ShouldBeFalse)
			So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 5*time.Millisecond)

			_, ok = keys.PollKey(0)
			So(ok, ShouldBeFalse)
		})

		Convey("A press from another goroutine wakes the poll", func() {
			go func() {
				time.Sleep(5 * time.Millisecond)
				keys.Push(constant.KeyEscape)
			}()

			code, ok := keys.PollKey(5 * time.Second)
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, constant.KeyEscape)
		})
	})
}
