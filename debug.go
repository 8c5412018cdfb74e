package kinetic

import (
	"time"

	"github.com/jamiealquiza/tachymeter"
	"go.uber.org/zap"
)

// debugReportEvery is the number of frames between debug stat reports.
const debugReportEvery = 120

// frameStats accumulates per-frame timings while debug mode is on.
type frameStats struct {
	tach   *tachymeter.Tachymeter
	frames int
}

func newFrameStats() *frameStats {
	return &frameStats{tach: tachymeter.New(&tachymeter.Config{Size: debugReportEvery})}
}

func (s *frameStats) record(e *Engine, d time.Duration) {
	s.tach.AddTime(d)
	s.frames++
	if s.frames < debugReportEvery {
		return
	}
	m := s.tach.Calc()
	log.Debug("frame stats",
		zap.Duration("avg", m.Time.Avg),
		zap.Duration("p95", m.Time.P95),
		zap.Duration("max", m.Time.Max),
		zap.Int("frameHandlers", e.frameHandlers.count()),
		zap.Int("viewportHandlers", e.viewportHandlers.count()),
		zap.Int("regions", len(e.regions)),
		zap.Int("pointerSubscribers", e.pointerSig.SubscriberCount()+e.pointerNormSig.SubscriberCount()),
	)
	s.tach.Reset()
	s.frames = 0
}

// SetDebugMode enables or disables frame timing. When enabled, frame time
// avg/p95/max and handler counts are logged at debug level every
// debugReportEvery frames.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled && e.stats == nil {
		e.stats = newFrameStats()
	}
}
