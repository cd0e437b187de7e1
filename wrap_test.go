package tau

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func lineWords(r *LayoutResult) [][]string {
	out := make([][]string, 0, r.LineCount())
	for _, l := range r.Lines {
		out = append(out, l.Words)
	}
	return out
}

func TestWrap_SingleLine(t *testing.T) {
	r := Wrap("a b c d", styleAt(18), 1000, fixedWidth)
	want := [][]string{{"a", "b", "c", "d"}}
	if diff := cmp.Diff(want, lineWords(r)); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if r.Lines[0].Width != 70 {
		t.Errorf("line width = %v, want 70", r.Lines[0].Width)
	}
}

func TestWrap_Greedy(t *testing.T) {
	// Candidates: "aa bb" = 50 >= 45 closes the first line.
	r := Wrap("aa bb cc dd ee", styleAt(18), 45, fixedWidth)
	want := [][]string{{"aa"}, {"bb"}, {"cc"}, {"dd", "ee"}}
	if diff := cmp.Diff(want, lineWords(r)); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestWrap_WidthIsExclusive(t *testing.T) {
	// "ab cd" measures exactly 50; meeting the width breaks the line.
	r := Wrap("ab cd ef gh", styleAt(18), 50, fixedWidth)
	if r.LineCount() < 2 || len(r.Lines[0].Words) != 1 {
		t.Errorf("lines = %v, want a break at exactly the width", lineWords(r))
	}
}

func TestWrap_WidowPairStaysTogether(t *testing.T) {
	r := Wrap("one two three four five", styleAt(18), 120, fixedWidth)
	last := r.Lines[r.LineCount()-1]
	if len(last.Words) < 2 {
		t.Fatalf("last line %v holds a lone word", last.Words)
	}
	if last.Words[len(last.Words)-2] != "four" || last.Words[len(last.Words)-1] != "five" {
		t.Errorf("last line = %v, want to end with four five", last.Words)
	}
	// Words stay separate units even though they are placed together.
	if r.WordCount() != 5 {
		t.Errorf("WordCount = %d, want 5", r.WordCount())
	}
}

func TestWrap_WidowPairMayOverflow(t *testing.T) {
	r := Wrap("x longword1 longword2", styleAt(18), 60, fixedWidth)
	want := [][]string{{"x"}, {"longword1", "longword2"}}
	if diff := cmp.Diff(want, lineWords(r)); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestWrap_OverWideWord(t *testing.T) {
	r := Wrap("a extraordinarily b c", styleAt(18), 50, fixedWidth)
	for _, l := range r.Lines {
		if len(l.Words) == 0 {
			t.Fatal("empty line")
		}
	}
	if got := r.Lines[1].Words; len(got) != 1 || got[0] != "extraordinarily" {
		t.Errorf("line 1 = %v, want the over-wide word alone", got)
	}
}

func TestWrap_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		m     TextMeasurer
	}{
		{"empty text", "", 100, fixedWidth},
		{"whitespace", " \t\n ", 100, fixedWidth},
		{"zero width", "a b", 0, fixedWidth},
		{"negative width", "a b", -5, fixedWidth},
		{"nan width", "a b", math.NaN(), fixedWidth},
		{"nil measurer", "a b", 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Wrap(tt.text, styleAt(18), tt.width, tt.m)
			if !r.Empty() || r.WordCount() != 0 {
				t.Errorf("got %d lines, want empty", r.LineCount())
			}
			if len(r.Words()) != 0 || r.String() != "" {
				t.Error("empty layout should have no words")
			}
		})
	}
}

func TestWrap_SingleWord(t *testing.T) {
	r := Wrap("  Delft  ", styleAt(18), 10, fixedWidth)
	if diff := cmp.Diff([][]string{{"Delft"}}, lineWords(r)); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestWrap_Properties(t *testing.T) {
	texts := []string{
		DefaultText,
		"a",
		"  leading and   trailing\twhitespace\n collapses  ",
		strings.Repeat("word ", 40),
		"Ünïcödé wörds wrap by rune count too",
	}
	for _, text := range texts {
		for _, width := range []float64{15, 60, 137, 300, 2000} {
			r := Wrap(text, styleAt(18), width, fixedWidth)
			again := Wrap(text, styleAt(18), width, fixedWidth)
			if diff := cmp.Diff(r, again, cmpopts.IgnoreUnexported(LayoutResult{})); diff != "" {
				t.Errorf("wrap not idempotent (-first +second):\n%s", diff)
			}
			if got, want := r.String(), strings.Join(strings.Fields(text), " "); got != want {
				t.Errorf("reconstruction = %q, want %q", got, want)
			}
			for i, l := range r.Lines {
				if len(l.Words) == 0 {
					t.Fatalf("width %v: line %d is empty", width, i)
				}
				if l.Index != i {
					t.Errorf("line %d has Index %d", i, l.Index)
				}
				last := i == r.LineCount()-1
				if l.Width > width && len(l.Words) > 1 && !last {
					t.Errorf("width %v: line %v measures %v", width, l.Words, l.Width)
				}
			}
		}
	}
}

func TestLayoutResult_Indices(t *testing.T) {
	r := newLayoutResult([]Line{
		{Index: 0, Words: []string{"a", "b", "c"}},
		{Index: 1, Words: []string{"d"}},
		{Index: 2, Words: []string{"e", "f"}},
	}, 100)
	if r.WordCount() != 6 {
		t.Errorf("WordCount = %d, want 6", r.WordCount())
	}
	for i, want := range []int{0, 3, 4} {
		if got := r.PrecedingWords(i); got != want {
			t.Errorf("PrecedingWords(%d) = %d, want %d", i, got, want)
		}
	}
	if r.PrecedingWords(9) != 0 || r.PrecedingWords(-1) != 0 {
		t.Error("out-of-range lines should have no preceding words")
	}
	if got := r.GlobalIndex(2, 1); got != 5 {
		t.Errorf("GlobalIndex(2, 1) = %d, want 5", got)
	}
}

func TestLayoutResult_NilSafe(t *testing.T) {
	var r *LayoutResult
	if r.LineCount() != 0 || r.WordCount() != 0 || !r.Empty() || r.Words() != nil {
		t.Error("nil layout should behave as empty")
	}
	if r.LineOffset(0, TextAlignCenter) != 0 {
		t.Error("nil layout offset should be 0")
	}
}

func TestLayoutResult_LineOffset(t *testing.T) {
	r := newLayoutResult([]Line{{Words: []string{"ab"}, Width: 20}}, 100)
	tests := []struct {
		align TextAlign
		want  float64
	}{
		{TextAlignLeft, 0},
		{TextAlignCenter, 40},
		{TextAlignRight, 80},
	}
	for _, tt := range tests {
		if got := r.LineOffset(0, tt.align); got != tt.want {
			t.Errorf("LineOffset(%v) = %v, want %v", tt.align, got, tt.want)
		}
	}
}

// --- TextLayout ---

func TestTextLayout_Caches(t *testing.T) {
	calls := 0
	m := MeasureFunc(func(s string, st StyleMetrics) float64 {
		calls++
		return fixedWidth(s, st)
	})
	tl := NewTextLayout("a b c", styleAt(18), 100, m)
	if !tl.Dirty() {
		t.Error("new layout should be dirty")
	}
	r1 := tl.Result()
	if r1.Generation != 1 || tl.Generation() != 1 {
		t.Errorf("generation = %d, want 1", r1.Generation)
	}
	n := calls
	if r2 := tl.Result(); r2 != r1 || calls != n {
		t.Error("clean layout should return the cached result without measuring")
	}
	if tl.stats.measureCalls != n || tl.stats.words != 3 || tl.stats.lines != 1 {
		t.Errorf("stats = %+v", tl.stats)
	}
}

func TestTextLayout_SettersInvalidate(t *testing.T) {
	tl := NewTextLayout("a b c d", styleAt(18), 1000, fixedWidth)
	tl.Result()

	tl.SetWidth(1000)
	tl.SetText("a b c d")
	tl.SetStyle(styleAt(18))
	if tl.Dirty() {
		t.Error("unchanged values should not invalidate")
	}

	tl.SetWidth(25)
	if !tl.Dirty() {
		t.Fatal("width change should invalidate")
	}
	r := tl.Result()
	if r.Generation != 2 || r.LineCount() < 2 {
		t.Errorf("reflow = %d lines at generation %d", r.LineCount(), r.Generation)
	}

	tl.SetText("x y")
	if got := tl.Result(); got.String() != "x y" || got.Generation != 3 {
		t.Errorf("after SetText = %q gen %d", got.String(), got.Generation)
	}

	tl.SetStyle(styleAt(24))
	if !tl.Dirty() {
		t.Error("style change should invalidate")
	}
	tl.Result()
	tl.SetMeasurer(fixedWidth)
	if !tl.Dirty() {
		t.Error("measurer change should invalidate")
	}
}

func TestTextLayout_NilMeasurer(t *testing.T) {
	tl := NewTextLayout("a b", styleAt(18), 100, nil)
	if r := tl.Result(); !r.Empty() {
		t.Errorf("nil measurer layout = %d lines, want empty", r.LineCount())
	}
}
