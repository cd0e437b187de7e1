package tau

import (
	"math"
	"strings"
)

// Line is one wrapped line of words.
type Line struct {
	Index int      `json:"index"`
	Words []string `json:"words"`
	Width float64  `json:"width"` // measured width of the words joined by single spaces
}

// Text returns the words joined by single spaces.
func (l Line) Text() string {
	return strings.Join(l.Words, " ")
}

// LayoutResult is the output of Wrap. It is replaced wholesale whenever the
// text, style or width change and is never mutated after it is returned.
type LayoutResult struct {
	Lines      []Line  `json:"lines"`
	Width      float64 `json:"width"`
	Generation uint64  `json:"generation"`

	preceding []int
	words     int
}

// LineCount returns the number of lines.
func (r *LayoutResult) LineCount() int {
	if r == nil {
		return 0
	}
	return len(r.Lines)
}

// WordCount returns the number of words across all lines.
func (r *LayoutResult) WordCount() int {
	if r == nil {
		return 0
	}
	return r.words
}

// Empty reports whether the layout has no lines.
func (r *LayoutResult) Empty() bool {
	return r.LineCount() == 0
}

// PrecedingWords returns the number of words on lines before line i.
func (r *LayoutResult) PrecedingWords(i int) int {
	if r == nil || i < 0 || i >= len(r.preceding) {
		return 0
	}
	return r.preceding[i]
}

// GlobalIndex returns the document-order index of word j on line i.
func (r *LayoutResult) GlobalIndex(i, j int) int {
	return r.PrecedingWords(i) + j
}

// Words returns all words in document order.
func (r *LayoutResult) Words() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, r.words)
	for _, l := range r.Lines {
		out = append(out, l.Words...)
	}
	return out
}

// String returns the words joined by single spaces, which is the
// whitespace-collapsed input text.
func (r *LayoutResult) String() string {
	return strings.Join(r.Words(), " ")
}

// LineOffset returns the horizontal offset of line i inside the container for
// the given alignment.
func (r *LayoutResult) LineOffset(i int, align TextAlign) float64 {
	if r == nil || i < 0 || i >= len(r.Lines) {
		return 0
	}
	free := r.Width - r.Lines[i].Width
	switch align {
	case TextAlignCenter:
		return free / 2
	case TextAlignRight:
		return free
	default:
		return 0
	}
}

func newLayoutResult(lines []Line, width float64) *LayoutResult {
	r := &LayoutResult{Lines: lines, Width: width, preceding: make([]int, len(lines))}
	for i, l := range lines {
		r.preceding[i] = r.words
		r.words += len(l.Words)
	}
	return r
}

// Wrap breaks text into lines that fit width when measured with m.
//
// Words are the whitespace-separated tokens of text. The last two words are
// placed as a single unit so the final line never holds a lone word when the
// text has more than one. A unit joins the current line unless the candidate
// line measures at least width and the current line already has words. A
// unit wider than width gets a line to itself.
//
// Empty text, a non-positive or NaN width and a nil measurer all produce an
// empty result.
func Wrap(text string, style StyleMetrics, width float64, m TextMeasurer) *LayoutResult {
	words := strings.Fields(text)
	if len(words) == 0 || m == nil || math.IsNaN(width) || width <= 0 {
		return newLayoutResult(nil, width)
	}

	units := placementUnits(words)

	var lines []Line
	var cur []string
	var curWidth float64
	var b strings.Builder

	for _, u := range units {
		b.Reset()
		for k, w := range cur {
			if k > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w)
		}
		for _, w := range u {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w)
		}
		candidate := b.String()
		cw := m.MeasureWidth(candidate, style)

		if cw >= width && len(cur) > 0 {
			lines = append(lines, Line{Index: len(lines), Words: cur, Width: curWidth})
			cur = append([]string(nil), u...)
			curWidth = m.MeasureWidth(strings.Join(cur, " "), style)
			continue
		}
		cur = append(cur, u...)
		curWidth = cw
	}
	if len(cur) > 0 {
		lines = append(lines, Line{Index: len(lines), Words: cur, Width: curWidth})
	}
	return newLayoutResult(lines, width)
}

// placementUnits groups words into the units the greedy wrapper places. All
// units are single words except the last, which holds the final two words.
func placementUnits(words []string) [][]string {
	if len(words) < 2 {
		return [][]string{words}
	}
	units := make([][]string, 0, len(words)-1)
	for _, w := range words[:len(words)-2] {
		units = append(units, []string{w})
	}
	return append(units, words[len(words)-2:])
}

// TextLayout caches the wrap of one text block. Any setter marks it dirty and
// Result recomputes the full layout on next use.
type TextLayout struct {
	text     string
	style    StyleMetrics
	width    float64
	measurer TextMeasurer

	dirty      bool
	generation uint64
	result     *LayoutResult

	stats layoutStats
}

// NewTextLayout returns a layout that is computed lazily.
func NewTextLayout(text string, style StyleMetrics, width float64, m TextMeasurer) *TextLayout {
	return &TextLayout{text: text, style: style, width: width, measurer: m, dirty: true}
}

// Text returns the verbatim text.
func (tl *TextLayout) Text() string { return tl.text }

// Style returns the current style.
func (tl *TextLayout) Style() StyleMetrics { return tl.style }

// Width returns the current container width.
func (tl *TextLayout) Width() float64 { return tl.width }

// SetText replaces the text.
func (tl *TextLayout) SetText(s string) {
	if s == tl.text {
		return
	}
	tl.text = s
	tl.dirty = true
}

// SetStyle replaces the style.
func (tl *TextLayout) SetStyle(style StyleMetrics) {
	if style.Equal(tl.style) {
		return
	}
	tl.style = style
	tl.dirty = true
}

// SetWidth replaces the container width.
func (tl *TextLayout) SetWidth(w float64) {
	if w == tl.width {
		return
	}
	tl.width = w
	tl.dirty = true
}

// SetMeasurer replaces the measurer.
func (tl *TextLayout) SetMeasurer(m TextMeasurer) {
	tl.measurer = m
	tl.dirty = true
}

// Dirty reports whether the next Result call recomputes.
func (tl *TextLayout) Dirty() bool { return tl.dirty }

// Generation returns the generation of the current result. It increases by
// one on every recompute.
func (tl *TextLayout) Generation() uint64 { return tl.generation }

// Result returns the current layout, recomputing it first if dirty.
func (tl *TextLayout) Result() *LayoutResult {
	if !tl.dirty && tl.result != nil {
		return tl.result
	}
	tl.dirty = false
	tl.generation++

	counter := &countingMeasurer{m: tl.measurer}
	var m TextMeasurer
	if tl.measurer != nil {
		m = counter
	}
	start := nowFunc()
	r := Wrap(tl.text, tl.style, tl.width, m)
	r.Generation = tl.generation
	tl.result = r

	tl.stats = layoutStats{
		generation:   tl.generation,
		lines:        r.LineCount(),
		words:        r.WordCount(),
		measureCalls: counter.calls,
		elapsed:      nowFunc().Sub(start),
	}
	return r
}

// countingMeasurer counts MeasureWidth calls for debug stats.
type countingMeasurer struct {
	m     TextMeasurer
	calls int
}

func (c *countingMeasurer) MeasureWidth(s string, style StyleMetrics) float64 {
	c.calls++
	return c.m.MeasureWidth(s, style)
}
