package playback

import (
	"time"

	"github.com/mbeissinger/vj-looper/catalog"
	"github.com/mbeissinger/vj-looper/log"
)

// Observer receives session events. Playback never writes to the terminal itself.
// Implementations must return quickly: they are called from the playback loop.
type Observer interface {
	OnCatalog(c catalog.Catalog)
	OnClipStart(path string, fps float64, target time.Duration)
	OnRewind(path string, rewinds int)
	OnClipEnd(report Report)
	OnClipError(path string, err error)
}

// LogObserver writes session events to the log.
type LogObserver struct{}

var _ Observer = LogObserver{}

func (LogObserver) OnCatalog(c catalog.Catalog) {
	log.WithFields(log.Fields{"root": c.Root(), "clips": c.Len()}).Info("catalog built")
}

func (LogObserver) OnClipStart(path string, fps float64, target time.Duration) {
	log.WithFields(log.Fields{"clip": path, "fps": fps, "target": target}).Info("clip started")
}

func (LogObserver) OnRewind(path string, rewinds int) {
	log.WithFields(log.Fields{"clip": path, "rewinds": rewinds}).Debug("clip rewound")
}

func (LogObserver) OnClipEnd(r Report) {
	log.WithFields(log.Fields{
		"clip":    r.Path,
		"end":     r.End.String(),
		"frames":  r.Frames,
		"rewinds": r.Rewinds,
		"elapsed": r.Elapsed.Round(time.Millisecond),
	}).Info("clip ended")
}

func (LogObserver) OnClipError(path string, err error) {
	log.WithFields(log.Fields{"clip": path}).Warnf("skipping clip: %v", err)
}

// Observers fans events out to several observers in order.
type Observers []Observer

var _ Observer = Observers(nil)

func (obs Observers) OnCatalog(c catalog.Catalog) {
	for _, o := range obs {
		o.OnCatalog(c)
	}
}

func (obs Observers) OnClipStart(path string, fps float64, target time.Duration) {
	for _, o := range obs {
		o.OnClipStart(path, fps, target)
	}
}

func (obs Observers) OnRewind(path string, rewinds int) {
	for _, o := range obs {
		o.OnRewind(path, rewinds)
	}
}

func (obs Observers) OnClipEnd(r Report) {
	for _, o := range obs {
		o.OnClipEnd(r)
	}
}

func (obs Observers) OnClipError(path string, err error) {
	for _, o := range obs {
		o.OnClipError(path, err)
	}
}

type nopObserver struct{}

func (nopObserver) OnCatalog(catalog.Catalog)                  {}
func (nopObserver) OnClipStart(string, float64, time.Duration) {}
func (nopObserver) OnRewind(string, int)                       {}
func (nopObserver) OnClipEnd(Report)                           {}
func (nopObserver) OnClipError(string, error)                  {}

func orNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
