package tau

import (
	"sort"
	"strings"
	"unicode"
)

// VerticalAlign positions a secondary style range against the baseline.
type VerticalAlign uint8

const (
	AlignBaseline VerticalAlign = iota
	AlignSuper
	AlignSub
)

// ParseVerticalAlign maps "super" and "sub"; anything else is baseline.
func ParseVerticalAlign(s string) VerticalAlign {
	switch s {
	case "super":
		return AlignSuper
	case "sub":
		return AlignSub
	default:
		return AlignBaseline
	}
}

// String returns the CSS keyword.
func (v VerticalAlign) String() string {
	switch v {
	case AlignSuper:
		return "super"
	case AlignSub:
		return "sub"
	default:
		return "baseline"
	}
}

// StyleRange applies a secondary style to Length words starting at the
// 1-based word Start.
type StyleRange struct {
	Start  int
	Length int

	Style          TextStyle
	Look           VisualState
	VerticalAlign  VerticalAlign
	VerticalOffset float64 // pixels, raised above the baseline
}

// covers reports whether the 0-based word index i falls in the range.
func (r StyleRange) covers(i int) bool {
	return i >= r.Start-1 && i < r.Start+r.Length-1
}

// StyledRun is one rendered piece of mixed-style text.
type StyledRun struct {
	Text string
	// Range is the index of the StyleRange styling the run, or -1 for the
	// primary style.
	Range int
	// Space marks the separate space run emitted where the style changes
	// between two words. It carries no text decoration.
	Space bool
}

// rangeFor returns the first range covering word i, or -1.
func rangeFor(ranges []StyleRange, i int) int {
	for k, r := range ranges {
		if r.covers(i) {
			return k
		}
	}
	return -1
}

const nbsp = "\u00A0"

// MixStyles splits text on whitespace and assigns each word the first range
// covering it. Inside a style the joining space is a no-break space attached
// to the word; at a style change it becomes its own Space run so decorations
// do not bridge the two styles.
func MixStyles(text string, ranges []StyleRange) []StyledRun {
	words := strings.Fields(text)
	runs := make([]StyledRun, 0, len(words))
	for i, w := range words {
		cur := rangeFor(ranges, i)
		last := i == len(words)-1
		next := -1
		if !last {
			next = rangeFor(ranges, i+1)
		}
		if !last && cur == next {
			w += nbsp
		}
		runs = append(runs, StyledRun{Text: w, Range: cur})
		if !last && cur != next {
			runs = append(runs, StyledRun{Text: nbsp, Range: cur, Space: true})
		}
	}
	return runs
}

// RunStyle resolves the text style of a run: the range style with the size
// override rules for raised and lowered ranges, or primary.
func RunStyle(primary TextStyle, ranges []StyleRange, run StyledRun) TextStyle {
	if run.Range < 0 || run.Range >= len(ranges) {
		return primary
	}
	r := ranges[run.Range]
	st := r.Style
	if r.VerticalAlign == AlignBaseline {
		st.Size = primary.Size
	}
	st.LineHeight = primary.LineHeight
	if r.VerticalAlign != AlignBaseline {
		st.LineHeight = Px(0)
	}
	return st
}

// InlineItem is an element placed between words, such as an icon.
type InlineItem struct {
	Position int     // 1-based word the item precedes; values below 1 mean 1
	Offset   float64 // pixels, raised above the middle of the line
}

// PieceKind is the kind of an inserted-text piece.
type PieceKind uint8

const (
	PieceText  PieceKind = iota // text in the primary style, whitespace preserved
	PieceSpace                  // an undecorated space next to an item
	PieceItem                   // an inline item
)

// Piece is one element of text with inline items.
type Piece struct {
	Kind   PieceKind
	Text   string
	Item   int // index into the items passed to InsertItems
	Offset float64
}

// InsertItems interleaves items with the words of text. Items are ordered by
// position, ties keeping their input order. An item before the first word is
// followed by a space, an item past the last word is preceded by one, and an
// item between words is surrounded by undecorated spaces in place of the
// whitespace that was there.
func InsertItems(text string, items []InlineItem) []Piece {
	type placed struct {
		index    int
		position int
		offset   float64
	}
	order := make([]placed, len(items))
	for i, it := range items {
		order[i] = placed{index: i, position: max(1, it.Position), offset: it.Offset}
	}
	sort.SliceStable(order, func(a, b int) bool { return order[a].position < order[b].position })

	var tokens []string
	if strings.TrimSpace(text) != "" {
		tokens = splitKeepSpace(text)
	}
	words := (len(tokens) + 1) / 2

	var out []Piece
	next := 0
	emit := func(p placed, before bool, after bool) {
		if before {
			out = append(out, Piece{Kind: PieceSpace, Text: " "})
		}
		out = append(out, Piece{Kind: PieceItem, Item: p.index, Offset: p.offset})
		if after {
			out = append(out, Piece{Kind: PieceSpace, Text: " "})
		}
	}

	for t := 0; t < len(tokens); t += 2 {
		word := t/2 + 1
		for next < len(order) && order[next].position <= word {
			p := order[next]
			next++
			if p.position == 1 {
				emit(p, false, true)
				continue
			}
			// Swap the preceding whitespace for an undecorated space.
			if n := len(out); n > 0 && out[n-1].Kind == PieceText && isSpace(out[n-1].Text) {
				ws := out[n-1].Text
				out = out[:n-1]
				if len(ws) > 1 {
					out = append(out, Piece{Kind: PieceText, Text: ws[:len(ws)-1]})
				}
				out = append(out, Piece{Kind: PieceSpace, Text: ws[len(ws)-1:]})
			}
			emit(p, false, true)
		}
		if tokens[t] != "" {
			out = append(out, Piece{Kind: PieceText, Text: tokens[t]})
		}
		if t+1 < len(tokens) {
			out = append(out, Piece{Kind: PieceText, Text: tokens[t+1]})
		}
	}
	for ; next < len(order); next++ {
		emit(order[next], words > 0, false)
	}
	return out
}

// splitKeepSpace splits s into alternating word and whitespace tokens,
// starting and ending with a word token that may be empty.
func splitKeepSpace(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if sp != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
			inSpace = sp
		}
	}
	tokens = append(tokens, s[start:])
	if inSpace {
		tokens = append(tokens, "")
	}
	return tokens
}

func isSpace(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
