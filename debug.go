package tau

import (
	"time"

	"go.uber.org/zap"
)

// nowFunc is swapped in tests that need deterministic timings.
var nowFunc = time.Now

// layoutStats holds the metrics of one layout recompute.
type layoutStats struct {
	generation   uint64
	lines        int
	words        int
	measureCalls int
	elapsed      time.Duration
}

// debugLog writes layout stats at debug level.
func debugLog(log *zap.Logger, widget string, stats layoutStats) {
	if ce := log.Check(zap.DebugLevel, "layout"); ce != nil {
		ce.Write(
			zap.String("widget", widget),
			zap.Uint64("generation", stats.generation),
			zap.Int("lines", stats.lines),
			zap.Int("words", stats.words),
			zap.Int("measureCalls", stats.measureCalls),
			zap.Duration("elapsed", stats.elapsed),
		)
	}
}

// debugMaxWords is the word count above which a layout is reported as large.
// Each word is an animated unit with its own transition.
const debugMaxWords = 1000

func debugCheckWordCount(log *zap.Logger, widget string, words int) {
	if words > debugMaxWords {
		log.Warn("text has many animated words",
			zap.String("widget", widget), zap.Int("words", words), zap.Int("threshold", debugMaxWords))
	}
}

// warnStagger logs a panel stagger percentage that NewTiming will clamp.
func warnStagger(log *zap.Logger, widget, name string, pct float64) {
	if !staggerInRange(pct) {
		log.Warn("stagger out of range, clamped to [0, 100]",
			zap.String("widget", widget), zap.String("stagger", name), zap.Float64("percent", pct))
	}
}

// warnSpring logs a spring whose settling time hit MaxSettlingTime.
func warnSpring(log *zap.Logger, widget string, tr Transition) {
	if tr.Type == TransitionSpring && tr.Seconds() >= MaxSettlingTime {
		log.Warn("spring never settles, duration clamped",
			zap.String("widget", widget),
			zap.Float64("stiffness", tr.Spring.Stiffness),
			zap.Float64("damping", tr.Spring.Damping),
			zap.Float64("mass", tr.Spring.Mass),
			zap.Float64("duration", MaxSettlingTime))
	}
}
