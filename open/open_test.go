package open

import (
	"testing"

	"github.com/mbeissinger/vj-looper/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("command", t, func() {
		Convey("Should pick the platform handler", func() {
			for goos, handler := range map[string]string{
				constant.Darwin:  "open",
				constant.Linux:   "xdg-open",
				constant.Android: "termux-open",
			} {
				cmd, ok := command(goos, "/wall")
				So(ok, ShouldBeTrue)
				So(cmd.Args, ShouldResemble, []string{handler, "/wall"})
			}
		})

		Convey("Should hand the path to rundll32 on Windows", func() {
			cmd, ok := command(constant.Windows, `C:\wall`)
			So(ok, ShouldBeTrue)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, `C:\wall`)
		})

		Convey("Should refuse unknown platforms", func() {
			_, ok := command("plan9", "/wall")
			So(ok, ShouldBeFalse)
		})
	})
}
