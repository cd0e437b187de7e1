package tau

import "strconv"

// Inset is a CSS inset() clip rectangle. Each side is a percentage of the
// element box; negative values extend the clip past the box.
type Inset struct {
	Top, Right, Bottom, Left float64
}

// String renders the inset as `inset(-100% 0% -100% 0%)`.
func (in Inset) String() string {
	b := make([]byte, 0, 40)
	b = append(b, "inset("...)
	for i, v := range [4]float64{in.Top, in.Right, in.Bottom, in.Left} {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendFloat(b, v, 'f', -1, 64)
		b = append(b, '%')
	}
	return string(append(b, ')'))
}

// MarshalText implements encoding.TextMarshaler.
func (in Inset) MarshalText() ([]byte, error) {
	return []byte(in.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseInset.
func (in *Inset) UnmarshalText(b []byte) error {
	v, err := ParseInset(string(b))
	if err != nil {
		return err
	}
	*in = v
	return nil
}

// ClipRange is the start and end clip of one highlighter layer.
type ClipRange struct {
	From, To Inset
}

// At interpolates the range at factor f, clamped.
func (r ClipRange) At(f float64) Inset {
	return LerpInset(r.From, r.To, Clamp01(f))
}

// Highlighter layers. The cover layer is the underline as it exists at rest
// and is wiped away to the right; the reveal layer is drawn in from the left.
var (
	HighlightCover = ClipRange{
		From: Inset{Top: -100, Right: 0, Bottom: -100, Left: 0},
		To:   Inset{Top: -100, Right: 0, Bottom: -100, Left: 100},
	}
	HighlightReveal = ClipRange{
		From: Inset{Top: -100, Right: 100, Bottom: -100, Left: 0},
		To:   Inset{Top: -100, Right: 0, Bottom: -100, Left: 0},
	}
)

// ClipPair holds the clip of both highlighter layers for one line.
type ClipPair struct {
	Cover  Inset `json:"cover"`
	Reveal Inset `json:"reveal"`
}

// ResolveHighlight returns both layer clips at factor f.
func ResolveHighlight(f float64) ClipPair {
	return ClipPair{Cover: HighlightCover.At(f), Reveal: HighlightReveal.At(f)}
}

// PreviewHighlight returns the static clips shown in the editor for a
// preview percentage in [0, 100].
func PreviewHighlight(percent float64) ClipPair {
	p := Clamp01(percent/100) * 100
	return ClipPair{
		Cover:  Inset{Top: -100, Right: 0, Bottom: -100, Left: p},
		Reveal: Inset{Top: -100, Right: 100 - p, Bottom: -100, Left: 0},
	}
}
