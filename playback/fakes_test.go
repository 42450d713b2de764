package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mbeissinger/vj-looper/catalog"
)

type fakeClock struct {
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps++
	c.now = c.now.Add(d)
}

// fakeStream yields frames numbered 0..frames-1 and then io.EOF.
type fakeStream struct {
	clock   *fakeClock
	fps     float64
	frames  int
	pos     int
	failAt    int // position answering with a read error instead of a frame, -1 for none
	rewindErr error
	reads     []time.Time
	rewinds   int
	closed    int
}

func newFakeStream(clock *fakeClock, fps float64, frames int) *fakeStream {
	return &fakeStream{clock: clock, fps: fps, frames: frames, failAt: -1}
}

func (s *fakeStream) FrameRate() float64 { return s.fps }

func (s *fakeStream) ReadFrame() ([]byte, error) {
	s.reads = append(s.reads, s.clock.Now())
	if s.pos == s.failAt {
		s.failAt = -1
		return nil, errors.New("corrupt packet")
	}
	if s.pos >= s.frames {
		return nil, io.EOF
	}
	s.pos++
	return []byte{byte(s.pos)}, nil
}

func (s *fakeStream) Rewind() error {
	if s.rewindErr != nil {
		return s.rewindErr
	}
	s.rewinds++
	s.pos = 0
	return nil
}

func (s *fakeStream) Close() error {
	s.closed++
	return nil
}

type fakeDisplay struct {
	clock  *fakeClock
	shown  []time.Time
	titles []string
	closed int
	err    error
}

func (d *fakeDisplay) Show([]byte) error {
	if d.err != nil {
		return d.err
	}
	d.shown = append(d.shown, d.clock.Now())
	return nil
}

func (d *fakeDisplay) SetTitle(title string) error {
	d.titles = append(d.titles, title)
	return nil
}

func (d *fakeDisplay) Close() error {
	d.closed++
	return nil
}

// scriptedKeys answers the n-th poll with script[n] when present.
type scriptedKeys struct {
	polls  int
	script map[int]int
}

func (k *scriptedKeys) PollKey(time.Duration) (int, bool) {
	k.polls++
	code, ok := k.script[k.polls]
	return code, ok
}

// fakeOpener hands out fresh fake streams, failing for paths listed in broken.
type fakeOpener struct {
	clock   *fakeClock
	fps     float64
	frames  int
	broken  map[string]bool
	opened  []*fakeStream
	attempt int
}

func (o *fakeOpener) Open(_ context.Context, path string) (Stream, error) {
	o.attempt++
	if o.broken[path] {
		return nil, fmt.Errorf("moov atom not found")
	}
	s := newFakeStream(o.clock, o.fps, o.frames)
	o.opened = append(o.opened, s)
	return s, nil
}

type recordingObserver struct {
	started []string
	ended   []Report
	errs    []error
	rewinds int
}

func (r *recordingObserver) OnCatalog(catalog.Catalog) {}

func (r *recordingObserver) OnClipStart(path string, _ float64, _ time.Duration) {
	r.started = append(r.started, path)
}

func (r *recordingObserver) OnRewind(string, int) { r.rewinds++ }

func (r *recordingObserver) OnClipEnd(report Report) { r.ended = append(r.ended, report) }

func (r *recordingObserver) OnClipError(_ string, err error) { r.errs = append(r.errs, err) }
