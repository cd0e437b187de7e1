package tau

import "math"

// Lerp interpolates between a and b. f is not clamped; callers clamp.
// Written as a weighted sum so that f == 0 returns a and f == 1 returns b
// exactly.
func Lerp(a, b, f float64) float64 {
	return a*(1-f) + b*f
}

// Clamp01 restricts f to [0, 1]. NaN maps to 0.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	return f
}

// LerpColor interpolates each channel of a and b independently.
func LerpColor(a, b Color, f float64) Color {
	return Color{
		R: Lerp(a.R, b.R, f),
		G: Lerp(a.G, b.G, f),
		B: Lerp(a.B, b.B, f),
		A: Lerp(a.A, b.A, f),
	}
}

// LerpInset interpolates each side of a clip inset independently.
func LerpInset(a, b Inset, f float64) Inset {
	return Inset{
		Top:    Lerp(a.Top, b.Top, f),
		Right:  Lerp(a.Right, b.Right, f),
		Bottom: Lerp(a.Bottom, b.Bottom, f),
		Left:   Lerp(a.Left, b.Left, f),
	}
}
