package tau

// DecorationLine is the CSS text-decoration-line of a highlighter state.
type DecorationLine uint8

const (
	DecorationNone DecorationLine = iota
	DecorationUnderline
	DecorationOverline
	DecorationLineThrough
)

// String returns the CSS keyword.
func (d DecorationLine) String() string {
	switch d {
	case DecorationUnderline:
		return "underline"
	case DecorationOverline:
		return "overline"
	case DecorationLineThrough:
		return "line-through"
	default:
		return "none"
	}
}

// ParseDecorationLine maps a CSS keyword to a DecorationLine. Unknown
// keywords map to DecorationNone.
func ParseDecorationLine(s string) DecorationLine {
	switch s {
	case "underline":
		return DecorationUnderline
	case "overline":
		return DecorationOverline
	case "line-through":
		return DecorationLineThrough
	default:
		return DecorationNone
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DecorationLine) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DecorationLine) UnmarshalText(b []byte) error {
	*d = ParseDecorationLine(string(b))
	return nil
}

// VisualState is the full set of animatable properties of one unit.
// Rotations are degrees, Blur is pixels, X and Y are pixel offsets.
type VisualState struct {
	Fill        Color   `json:"fill"`
	Stroke      Color   `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	RotateX     float64 `json:"rotateX"`
	RotateY     float64 `json:"rotateY"`
	RotateZ     float64 `json:"rotateZ"`
	Scale       float64 `json:"scale"`
	Blur        float64 `json:"blur"`

	DecorationLine      DecorationLine `json:"decorationLine"`
	DecorationThickness float64        `json:"decorationThickness"`
	DecorationColor     Color          `json:"decorationColor"`
}

var highlightBlue = Color{R: 30.0 / 255, G: 42.0 / 255, B: 210.0 / 255, A: 1}

// Panel defaults for the animator widgets.
var (
	DefaultStartState = VisualState{
		Fill:   ColorBlack,
		Stroke: ColorBlack,
		Y:      10,
		Scale:  1,
	}
	DefaultEndState = VisualState{
		Fill:   highlightBlue,
		Stroke: ColorBlack,
		Scale:  1,
	}
)

// Panel defaults for the highlighter widgets.
var (
	DefaultHighlightStart = VisualState{
		Fill:                ColorBlack,
		Stroke:              ColorBlack,
		Scale:               1,
		DecorationThickness: 1,
		DecorationColor:     ColorBlack,
	}
	DefaultHighlightEnd = VisualState{
		Fill:                highlightBlue,
		Stroke:              ColorBlack,
		Scale:               1,
		DecorationThickness: 1,
		DecorationColor:     ColorBlack,
	}
)

// LerpState interpolates every numeric and colour property of a and b at
// the clamped factor f. The decoration line style cannot be interpolated: it
// holds a's value until f reaches 1.
func LerpState(a, b VisualState, f float64) VisualState {
	f = Clamp01(f)
	out := VisualState{
		Fill:        LerpColor(a.Fill, b.Fill, f),
		Stroke:      LerpColor(a.Stroke, b.Stroke, f),
		StrokeWidth: Lerp(a.StrokeWidth, b.StrokeWidth, f),
		X:           Lerp(a.X, b.X, f),
		Y:           Lerp(a.Y, b.Y, f),
		RotateX:     Lerp(a.RotateX, b.RotateX, f),
		RotateY:     Lerp(a.RotateY, b.RotateY, f),
		RotateZ:     Lerp(a.RotateZ, b.RotateZ, f),
		Scale:       Lerp(a.Scale, b.Scale, f),
		Blur:        Lerp(a.Blur, b.Blur, f),

		DecorationLine:      a.DecorationLine,
		DecorationThickness: Lerp(a.DecorationThickness, b.DecorationThickness, f),
		DecorationColor:     LerpColor(a.DecorationColor, b.DecorationColor, f),
	}
	if f == 1 {
		out.DecorationLine = b.DecorationLine
		out.DecorationThickness = b.DecorationThickness
		out.DecorationColor = b.DecorationColor
	}
	return out
}
