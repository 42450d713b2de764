package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mbeissinger/vj-looper/filesystem"
	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should be a no-op", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
		})

		Convey("WithFields should still be usable", func() {
			So(Setup(), ShouldBeNil)
			So(func() { WithFields(Fields{"clip": "a.mp4"}).Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")

		Convey("Setup should create today's log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			Infof("looping %s", "a.mp4")
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)

			contents := lo.Must(filesystem.API().ReadFile(path))
			So(string(contents), ShouldContainSubstring, "looping a.mp4")
		})

		Convey("Records below the level should be dropped", func() {
			viper.Set(key.LogsLevel, "warn")
			So(Setup(), ShouldBeNil)

			Debugf("frame %d", 42)
			Warnf("stream read failure")
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			contents := string(lo.Must(filesystem.API().ReadFile(path)))
			So(contents, ShouldContainSubstring, "stream read failure")
			So(contents, ShouldNotContainSubstring, "frame 42")
		})

		Reset(func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)
		})
	})
}
