package playback

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFrameInterval(t *testing.T) {
	Convey("FrameInterval", t, func() {
		Convey("Should invert a usable frame rate", func() {
			So(FrameInterval(25, 30), ShouldEqual, 40*time.Millisecond)
			So(FrameInterval(10, 30), ShouldEqual, 100*time.Millisecond)
		})

		Convey("Should fall back when the stream rate is unusable", func() {
			for _, fps := range []float64{0, -5, math.NaN(), math.Inf(1), 90000} {
				So(FrameInterval(fps, 20), ShouldEqual, 50*time.Millisecond)
			}
		})

		Convey("Should use the default when the fallback is unusable too", func() {
			So(FrameInterval(0, 0), ShouldEqual, DefaultInterval)
		})
	})
}

func TestPacer(t *testing.T) {
	Convey("Given a pacer on a fake clock", t, func() {
		clock := newFakeClock()
		pacer := NewPacer(clock)
		interval := 40 * time.Millisecond

		Convey("Throttle waits until the interval has elapsed", func() {
			start := clock.Now()
			next := pacer.Throttle(interval, start)
			So(next.Sub(start), ShouldEqual, interval)
		})

		Convey("Sleeps never exceed the step", func() {
			pacer.Throttle(interval, clock.Now())
			So(clock.sleeps, ShouldEqual, int(interval/DefaultStep))
		})

		Convey("Throttle returns immediately when the interval already passed", func() {
			last := clock.Now()
			clock.Sleep(time.Second)
			sleeps := clock.sleeps

			next := pacer.Throttle(interval, last)
			So(next.Equal(clock.Now()), ShouldBeTrue)
			So(clock.sleeps, ShouldEqual, sleeps)
		})

		Convey("Consecutive deliveries are spaced by the interval without drifting", func() {
			start := clock.Now()
			last := start
			const frames = 250
			for i := 1; i <= frames; i++ {
				next := pacer.Throttle(interval, last)
				So(next.Sub(last), ShouldBeGreaterThanOrEqualTo, interval)
				last = next
			}
			So(last.Sub(start), ShouldEqual, frames*interval)
		})

		Convey("A coarse step still stops at the deadline", func() {
			pacer.Step = time.Second
			start := clock.Now()
			So(pacer.Throttle(interval, start).Sub(start), ShouldEqual, interval)
		})
	})

	Convey("Given a pacer on the system clock", t, func() {
		pacer := NewPacer(SystemClock)
		interval := 20 * time.Millisecond

		Convey("Throttle blocks at least the interval and overshoots only slightly", func() {
			start := time.Now()
			next := pacer.Throttle(interval, start)
			So(next.Sub(start), ShouldBeGreaterThanOrEqualTo, interval)
			So(next.Sub(start), ShouldBeLessThan, interval+200*time.Millisecond)
		})
	})
}
