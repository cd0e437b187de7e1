package tau

import "math"

// Timing holds the stagger parameters shared by every unit of a widget.
// Duration is in seconds; the staggers are fractions in [0, 1] of Duration.
type Timing struct {
	Duration    float64 `json:"duration"`
	LineStagger float64 `json:"lineStagger"`
	WordStagger float64 `json:"wordStagger"`
}

// NewTiming derives a Timing from a transition and the panel's percentage
// staggers (0..100). Out-of-range staggers are clamped.
func NewTiming(tr Transition, linePct, wordPct float64) Timing {
	return Timing{
		Duration:    tr.Seconds(),
		LineStagger: Clamp01(linePct / 100),
		WordStagger: Clamp01(wordPct / 100),
	}
}

// staggerInRange reports whether a panel percentage needs no clamping.
func staggerInRange(pct float64) bool {
	return pct >= 0 && pct <= 100
}

// WordDelay returns the appear-mode delay of word j on line i in seconds.
// The line term interpolates between the line index and the number of words
// before the line, so a higher word stagger pushes later lines back by the
// words already revealed.
func (t Timing) WordDelay(layout *LayoutResult, i, j int) float64 {
	d := t.Duration
	return d*t.LineStagger*Lerp(float64(i), float64(layout.PrecedingWords(i)), t.WordStagger) +
		d*t.WordStagger*float64(j)
}

// LineDelay returns the appear-mode delay of line i when each line animates
// as one unit.
func (t Timing) LineDelay(i int) float64 {
	return t.Duration * t.LineStagger * float64(i)
}

// Delays returns WordDelay for every word, indexed [line][word].
func (t Timing) Delays(layout *LayoutResult) [][]float64 {
	out := make([][]float64, layout.LineCount())
	for i := range out {
		ws := layout.Lines[i].Words
		row := make([]float64, len(ws))
		for j := range ws {
			row[j] = t.WordDelay(layout, i, j)
		}
		out[i] = row
	}
	return out
}

// LineDelays returns LineDelay for every line of layout.
func (t Timing) LineDelays(layout *LayoutResult) []float64 {
	out := make([]float64, layout.LineCount())
	for i := range out {
		out[i] = t.LineDelay(i)
	}
	return out
}

// ScrollSchedule maps a continuous progress value in [0, 1] onto per-unit
// factors. Lines start one after another, LineStagger·Duration apart; inside
// a line the words share the line's Duration, each starting
// WordStagger·wordAnimationTime after the previous one.
type ScrollSchedule struct {
	timing Timing
	layout *LayoutResult
	total  float64
}

// NewScrollSchedule builds the schedule for a layout. Factors do not depend
// on the duration, so a zero, negative or non-finite one is replaced by 1.
func NewScrollSchedule(t Timing, layout *LayoutResult) *ScrollSchedule {
	if !(t.Duration > 0) || math.IsInf(t.Duration, 0) {
		t.Duration = 1
	}
	s := &ScrollSchedule{timing: t, layout: layout}
	if l := layout.LineCount(); l > 0 {
		s.total = t.Duration * (1 + float64(l-1)*t.LineStagger)
	}
	return s
}

// TotalDuration is the virtual time the whole text takes to animate.
func (s *ScrollSchedule) TotalDuration() float64 {
	return s.total
}

// LineStart returns the virtual time line i starts animating.
func (s *ScrollSchedule) LineStart(i int) float64 {
	return float64(i) * s.timing.LineStagger * s.timing.Duration
}

// WordAnimationTime is the time one word of an n-word line animates for.
func (s *ScrollSchedule) WordAnimationTime(n int) float64 {
	if n < 1 {
		n = 1
	}
	return s.timing.Duration / (1 + float64(n-1)*s.timing.WordStagger)
}

// WordStart returns the virtual time word j of line i starts animating.
func (s *ScrollSchedule) WordStart(i, j int) float64 {
	return s.LineStart(i) + float64(j)*s.timing.WordStagger*s.WordAnimationTime(s.wordsOn(i))
}

func (s *ScrollSchedule) wordsOn(i int) int {
	if i < 0 || i >= s.layout.LineCount() {
		return 0
	}
	return len(s.layout.Lines[i].Words)
}

// WordFactor returns the factor of word j on line i at progress value.
func (s *ScrollSchedule) WordFactor(value float64, i, j int) float64 {
	if s.layout.Empty() {
		return 0
	}
	return unitFactor(value*s.total-s.WordStart(i, j), s.WordAnimationTime(s.wordsOn(i)))
}

// LineFactor returns the factor of line i at progress value, treating the
// line as a single unit.
func (s *ScrollSchedule) LineFactor(value float64, i int) float64 {
	if s.layout.Empty() {
		return 0
	}
	return unitFactor(value*s.total-s.LineStart(i), s.timing.Duration)
}

// Factors fills dst with every word factor at value and returns it. dst is
// reused when its shape already matches the layout.
func (s *ScrollSchedule) Factors(value float64, dst [][]float64) [][]float64 {
	n := s.layout.LineCount()
	if cap(dst) < n {
		dst = make([][]float64, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		w := len(s.layout.Lines[i].Words)
		row := dst[i]
		if cap(row) < w {
			row = make([]float64, w)
		}
		row = row[:w]
		for j := range row {
			row[j] = s.WordFactor(value, i, j)
		}
		dst[i] = row
	}
	return dst
}

// LineFactors fills dst with every line factor at value and returns it.
func (s *ScrollSchedule) LineFactors(value float64, dst []float64) []float64 {
	n := s.layout.LineCount()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = s.LineFactor(value, i)
	}
	return dst
}

// unitFactor clamps elapsed/span. A zero span jumps to 1 once elapsed
// reaches 0.
func unitFactor(elapsed, span float64) float64 {
	if math.IsNaN(elapsed) {
		return 0
	}
	if span <= 0 || math.IsNaN(span) {
		if elapsed >= 0 {
			return 1
		}
		return 0
	}
	return Clamp01(elapsed / span)
}
