package tau

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default fill of the start state.
var ColorBlack = Color{0, 0, 0, 1}

// ColorTransparent has every channel at zero.
var ColorTransparent = Color{}

// RGBA implements color.Color. Premultiplication happens here so a Color can
// be handed straight to image and ebiten APIs.
func (c Color) RGBA() (r, g, b, a uint32) {
	a8 := Clamp01(c.A)
	return uint32(Clamp01(c.R) * a8 * 0xffff),
		uint32(Clamp01(c.G) * a8 * 0xffff),
		uint32(Clamp01(c.B) * a8 * 0xffff),
		uint32(a8 * 0xffff)
}

var _ color.Color = Color{}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping area of r and other. The result has
// zero width or height when the rectangles do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// TextAlign controls horizontal alignment of wrapped lines.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// ParseTextAlign maps the panel values "left", "center" and "right".
// Anything else is left-aligned.
func ParseTextAlign(s string) TextAlign {
	switch s {
	case "center":
		return TextAlignCenter
	case "right":
		return TextAlignRight
	default:
		return TextAlignLeft
	}
}

// String returns the CSS keyword for the alignment.
func (a TextAlign) String() string {
	switch a {
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	default:
		return "left"
	}
}

// Granularity selects what a single animated unit is.
type Granularity uint8

const (
	GranularityWord Granularity = iota // one unit per word
	GranularityLine                    // one unit per wrapped line
)
