package tau

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The property panel and config files carry CSS-like value strings. They are
// parsed with a small participle grammar rather than ad-hoc string slicing.

var (
	valueLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"|'(?:\\.|[^'])*'`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:px|em|%)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[(),/]`},
	})

	lengthParser = participle.MustBuild[lengthExpr](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
	)
	insetParser = participle.MustBuild[insetExpr](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
	)
	rgbParser = participle.MustBuild[rgbExpr](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
	)
	variationParser = participle.MustBuild[variationList](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
)

type lengthExpr struct {
	Value string `parser:"@Number"`
}

type insetExpr struct {
	Sides []string `parser:"'inset' '(' @Number+ ')'"`
}

type rgbExpr struct {
	Func  string   `parser:"@('rgb' | 'rgba')"`
	Args  []string `parser:"'(' @Number ( ','? @Number )*"`
	Alpha *string  `parser:"( '/' @Number )? ')'"`
}

type variationList struct {
	Settings []*variationSetting `parser:"( @@ ( ',' @@ )* )?"`
}

type variationSetting struct {
	Tag   string `parser:"@String"`
	Value string `parser:"@Number"`
}

// splitNumber separates a Number token into its value and unit.
func splitNumber(tok string) (float64, Unit, error) {
	unit := UnitNone
	switch {
	case strings.HasSuffix(tok, "px"):
		unit, tok = UnitPx, tok[:len(tok)-2]
	case strings.HasSuffix(tok, "em"):
		unit, tok = UnitEm, tok[:len(tok)-2]
	case strings.HasSuffix(tok, "%"):
		unit, tok = UnitPercent, tok[:len(tok)-1]
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, unit, err
	}
	return v, unit, nil
}

// ParseLength parses a CSS length such as "18px", "1.2em", "120%" or "0".
func ParseLength(s string) (Length, error) {
	expr, err := lengthParser.ParseString("", strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return Length{}, fmt.Errorf("tau: parse length %q: %w", s, err)
	}
	v, u, err := splitNumber(expr.Value)
	if err != nil {
		return Length{}, fmt.Errorf("tau: parse length %q: %w", s, err)
	}
	return Length{Value: v, Unit: u}, nil
}

// ParseInset parses a CSS inset() clip shape with one to four percentage
// sides, expanded the way CSS expands margin shorthands.
func ParseInset(s string) (Inset, error) {
	expr, err := insetParser.ParseString("", strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return Inset{}, fmt.Errorf("tau: parse inset %q: %w", s, err)
	}
	if len(expr.Sides) > 4 {
		return Inset{}, fmt.Errorf("tau: parse inset %q: %d sides, want at most 4", s, len(expr.Sides))
	}
	v := make([]float64, len(expr.Sides))
	for i, side := range expr.Sides {
		f, u, err := splitNumber(side)
		if err != nil {
			return Inset{}, fmt.Errorf("tau: parse inset %q: %w", s, err)
		}
		if u != UnitPercent && u != UnitNone {
			return Inset{}, fmt.Errorf("tau: parse inset %q: side %q is not a percentage", s, side)
		}
		v[i] = f
	}
	switch len(v) {
	case 1:
		return Inset{v[0], v[0], v[0], v[0]}, nil
	case 2:
		return Inset{v[0], v[1], v[0], v[1]}, nil
	case 3:
		return Inset{v[0], v[1], v[2], v[1]}, nil
	default:
		return Inset{v[0], v[1], v[2], v[3]}, nil
	}
}

// ParseVariationSettings parses a font-variation-settings value such as
// `"wght" 200, "opsz" 16`. "normal" and the empty string yield no settings.
func ParseVariationSettings(s string) ([]FontVariation, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "normal") {
		return nil, nil
	}
	list, err := variationParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("tau: parse font-variation-settings %q: %w", s, err)
	}
	out := make([]FontVariation, 0, len(list.Settings))
	for _, setting := range list.Settings {
		if len(setting.Tag) != 4 {
			return nil, fmt.Errorf("tau: parse font-variation-settings %q: tag %q must be 4 characters", s, setting.Tag)
		}
		v, u, err := splitNumber(setting.Value)
		if err != nil {
			return nil, fmt.Errorf("tau: parse font-variation-settings %q: %w", s, err)
		}
		if u != UnitNone {
			return nil, fmt.Errorf("tau: parse font-variation-settings %q: value %q has a unit", s, setting.Value)
		}
		out = append(out, FontVariation{Tag: setting.Tag, Value: v})
	}
	return out, nil
}

// parseRGB parses rgb()/rgba() in either the comma or the space-separated
// form. Channels are 0..255 or percentages; alpha is 0..1 or a percentage.
func parseRGB(s string) (Color, error) {
	expr, err := rgbParser.ParseString("", s)
	if err != nil {
		return Color{}, err
	}
	args := expr.Args
	if expr.Alpha != nil {
		args = append(args, *expr.Alpha)
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("%s() takes 3 or 4 arguments, got %d", expr.Func, len(args))
	}
	var ch [4]float64
	ch[3] = 1
	for i, arg := range args {
		v, u, err := splitNumber(arg)
		if err != nil {
			return Color{}, err
		}
		switch {
		case u == UnitPercent:
			v /= 100
		case u != UnitNone:
			return Color{}, fmt.Errorf("argument %q has a length unit", arg)
		case i < 3:
			v /= 255
		}
		ch[i] = Clamp01(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
