package tau

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses the colour notations the property panel emits: #rgb,
// #rrggbb, #rrggbbaa, rgb(), rgba() and the keyword "transparent".
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "transparent":
		return ColorTransparent, nil
	case strings.HasPrefix(v, "#"):
		c, err := parseHex(v)
		if err != nil {
			return Color{}, fmt.Errorf("tau: parse color %q: %w", s, err)
		}
		return c, nil
	case strings.HasPrefix(v, "rgb"):
		c, err := parseRGB(v)
		if err != nil {
			return Color{}, fmt.Errorf("tau: parse color %q: %w", s, err)
		}
		return c, nil
	}
	return Color{}, fmt.Errorf("tau: parse color %q: unsupported notation", s)
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(v string) (Color, error) {
	alpha := 1.0
	switch len(v) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return Color{}, err
		}
		alpha = float64(a) / 255
		v = v[:7]
	default:
		return Color{}, fmt.Errorf("hex colour must have 3, 6 or 8 digits")
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Hex renders the colour as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: Clamp01(c.R), G: Clamp01(c.G), B: Clamp01(c.B)}.Hex()
}

// String renders the colour as CSS rgba() with 0..255 channels.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		channel8(c.R), channel8(c.G), channel8(c.B),
		strconv.FormatFloat(math.Round(Clamp01(c.A)*1000)/1000, 'f', -1, 64))
}

func channel8(v float64) int {
	return int(math.Round(Clamp01(v) * 255))
}

// MarshalText implements encoding.TextMarshaler so frames and configs carry
// colours as CSS strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseColor.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
