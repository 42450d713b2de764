package catalog

import (
	"testing"

	"github.com/mbeissinger/vj-looper/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestListing(t *testing.T) {
	Convey("Given a built catalog", t, func() {
		filesystem.SetMemMapFs()
		touch("/wall/a.mp4")
		touch("/wall/sub/b.mp4")

		c, err := Build("/wall", []string{".mp4"})
		So(err, ShouldBeNil)

		Convey("Listing describes every clip", func() {
			listing, err := c.Listing([]string{".mp4"}, "")
			So(err, ShouldBeNil)
			So(listing.Root, ShouldEqual, "/wall")
			So(listing.Clips, ShouldHaveLength, 2)
			So(listing.Clips[0], ShouldResemble, Entry{Path: "/wall/a.mp4", Rel: "a.mp4", Size: 1})
			So(listing.Clips[1].Rel, ShouldEqual, "sub/b.mp4")
		})

		Convey("A clip removed after the walk fails the listing", func() {
			So(filesystem.API().Remove("/wall/a.mp4"), ShouldBeNil)
			_, err := c.Listing([]string{".mp4"}, "")
			So(err, ShouldNotBeNil)
		})

		Convey("An empty catalog lists no clips", func() {
			listing, err := New("/wall", nil).Listing(nil, "zzz")
			So(err, ShouldBeNil)
			So(listing.Clips, ShouldBeEmpty)
			So(listing.Filter, ShouldEqual, "zzz")
		})
	})
}
