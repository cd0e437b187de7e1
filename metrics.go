package tau

import (
	"strconv"
	"strings"
)

// Unit is the unit a Length was authored in.
type Unit uint8

const (
	UnitNone    Unit = iota // unit-less number, a factor of the font size
	UnitPx                  // CSS pixels
	UnitEm                  // multiples of the font size
	UnitPercent             // percent of the font size
)

// String returns the CSS suffix for the unit.
func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitEm:
		return "em"
	case UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Length preserves a numeric value with its authored unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Em returns an em Length.
func Em(v float64) Length { return Length{Value: v, Unit: UnitEm} }

// Percent returns a percentage Length.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Resolve converts the length to pixels relative to fontSize.
func (l Length) Resolve(fontSize float64) float64 {
	switch l.Unit {
	case UnitPx:
		return l.Value
	case UnitEm, UnitNone:
		return l.Value * fontSize
	case UnitPercent:
		return l.Value / 100 * fontSize
	default:
		return l.Value
	}
}

// String renders the length as CSS, e.g. "1.2em" or "120%".
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// FontVariation is one variable-font axis setting.
type FontVariation struct {
	Tag   string
	Value float64
}

// Axis is an optionally enabled variable-font axis value.
type Axis struct {
	Enabled bool
	Value   float64
}

// Axes holds the registered axes the panel exposes plus any custom axes.
type Axes struct {
	Wght Axis
	Ital Axis
	Slnt Axis
	Opsz Axis

	Custom []FontVariation
}

// variations returns the enabled axes in wght, ital, slnt, opsz order,
// followed by the custom axes.
func (a Axes) variations() []FontVariation {
	var out []FontVariation
	for _, ax := range [...]struct {
		tag string
		axis Axis
	}{{"wght", a.Wght}, {"ital", a.Ital}, {"slnt", a.Slnt}, {"opsz", a.Opsz}} {
		if ax.axis.Enabled {
			out = append(out, FontVariation{Tag: ax.tag, Value: ax.axis.Value})
		}
	}
	return append(out, a.Custom...)
}

// FontStyle is the CSS font-style.
type FontStyle uint8

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// String returns the CSS keyword.
func (s FontStyle) String() string {
	if s == FontStyleItalic {
		return "italic"
	}
	return "normal"
}

// TextStyle is the author-facing text style: lengths keep their units and
// axes carry their enable toggles.
type TextStyle struct {
	Family        string
	Size          float64
	Weight        int
	Style         FontStyle
	LetterSpacing Length
	LineHeight    Length
	Axes          Axes
}

// SetVariations enables the registered axes named in vs and keeps the rest
// as custom axes.
func (s *TextStyle) SetVariations(vs []FontVariation) {
	s.Axes = Axes{}
	for _, v := range vs {
		ax := Axis{Enabled: true, Value: v.Value}
		switch v.Tag {
		case "wght":
			s.Axes.Wght = ax
		case "ital":
			s.Axes.Ital = ax
		case "slnt":
			s.Axes.Slnt = ax
		case "opsz":
			s.Axes.Opsz = ax
		default:
			s.Axes.Custom = append(s.Axes.Custom, v)
		}
	}
}

// DefaultTextStyle mirrors the panel defaults: Inter 18px, 0em letter
// spacing, 120% line height, no custom axes.
var DefaultTextStyle = TextStyle{
	Family:        "Inter",
	Size:          18,
	Weight:        400,
	LetterSpacing: Em(0),
	LineHeight:    Percent(120),
}

// Metrics resolves the style into pixel units.
func (s TextStyle) Metrics() StyleMetrics {
	family := s.Family
	if family == "" {
		family = DefaultTextStyle.Family
	}
	weight := s.Weight
	if weight <= 0 {
		weight = 400
	}
	return StyleMetrics{
		Family:        family,
		Size:          s.Size,
		Weight:        weight,
		Style:         s.Style,
		LetterSpacing: s.LetterSpacing.Resolve(s.Size),
		LineHeight:    s.LineHeight.Resolve(s.Size),
		Variations:    s.Axes.variations(),
	}
}

// StyleMetrics is the resolved style a TextMeasurer works with. Lengths are
// in pixels. Treat values as immutable: a new StyleMetrics is built whenever
// the style configuration changes.
type StyleMetrics struct {
	Family        string
	Size          float64
	Weight        int
	Style         FontStyle
	LetterSpacing float64
	LineHeight    float64
	Variations    []FontVariation
}

// VariationSettings renders the CSS font-variation-settings value, e.g.
// `"wght" 200, "opsz" 16`. It is empty when no axis is enabled.
func (m StyleMetrics) VariationSettings() string {
	parts := make([]string, 0, len(m.Variations))
	for _, v := range m.Variations {
		parts = append(parts, strconv.Quote(v.Tag)+" "+strconv.FormatFloat(v.Value, 'f', -1, 64))
	}
	return strings.Join(parts, ", ")
}

// key identifies the measurement-relevant part of the metrics. Measurers use
// it to cache per-style faces.
func (m StyleMetrics) key() string {
	var b strings.Builder
	b.WriteString(m.Family)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(m.Size, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(m.Weight))
	b.WriteByte('|')
	b.WriteString(m.Style.String())
	b.WriteByte('|')
	b.WriteString(m.VariationSettings())
	return b.String()
}

// Equal reports whether two metrics describe the same style.
func (m StyleMetrics) Equal(o StyleMetrics) bool {
	return m.LetterSpacing == o.LetterSpacing && m.LineHeight == o.LineHeight && m.key() == o.key()
}
