package tau

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer reports the advance width of a run of text in a resolved
// style. Implementations must be deterministic for identical inputs.
type TextMeasurer interface {
	MeasureWidth(text string, style StyleMetrics) float64
}

// MeasureFunc adapts a plain function to TextMeasurer.
type MeasureFunc func(text string, style StyleMetrics) float64

// MeasureWidth calls fn.
func (fn MeasureFunc) MeasureWidth(text string, style StyleMetrics) float64 {
	return fn(text, style)
}

// letterSpacing returns the tracking added after every rune, as browsers do.
func letterSpacing(s string, style StyleMetrics) float64 {
	if style.LetterSpacing == 0 {
		return 0
	}
	return style.LetterSpacing * float64(utf8.RuneCountInString(s))
}

// --- BitmapFont ---

type glyph struct {
	id       rune
	xAdvance int16
}

const asciiGlyphCount = 128

// BitmapFont measures text from BMFont .fnt metrics. Advances are scaled from
// the font's native size to the requested style size. Variation axes are
// ignored.
type BitmapFont struct {
	size       float64
	lineHeight float64

	asciiGlyphs [asciiGlyphCount]glyph
	asciiSet    [asciiGlyphCount]bool
	extGlyphs   map[rune]*glyph

	kernings map[[2]rune]int16
}

// MeasureWidth implements TextMeasurer.
func (f *BitmapFont) MeasureWidth(s string, style StyleMetrics) float64 {
	var cursorX float64
	var prevRune rune
	var hasPrev bool

	for _, r := range s {
		g := f.glyph(r)
		if g == nil {
			hasPrev = false
			continue
		}
		if hasPrev {
			cursorX += float64(f.kern(prevRune, r))
		}
		cursorX += float64(g.xAdvance)
		prevRune = r
		hasPrev = true
	}
	return cursorX*f.scale(style.Size) + letterSpacing(s, style)
}

// LineHeight returns the native distance between baselines scaled to size.
func (f *BitmapFont) LineHeight(size float64) float64 {
	return f.lineHeight * f.scale(size)
}

// Size returns the size the font was rasterized at.
func (f *BitmapFont) Size() float64 {
	return f.size
}

func (f *BitmapFont) scale(size float64) float64 {
	if size <= 0 || f.size <= 0 {
		return 1
	}
	return size / f.size
}

func (f *BitmapFont) glyph(r rune) *glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	return f.extGlyphs[r]
}

func (f *BitmapFont) kern(first, second rune) int16 {
	if f.kernings == nil {
		return 0
	}
	return f.kernings[[2]rune{first, second}]
}

// LoadBitmapFont parses BMFont .fnt text-format data.
func LoadBitmapFont(fntData []byte) (*BitmapFont, error) {
	f := &BitmapFont{}

	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	var charCount int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "info":
			if v, ok := fields["size"]; ok {
				size, _ := strconv.ParseFloat(v, 64)
				// Negative sizes mean "match char height" in BMFont.
				if size < 0 {
					size = -size
				}
				f.size = size
			}

		case "common":
			if v, ok := fields["lineHeight"]; ok {
				f.lineHeight, _ = strconv.ParseFloat(v, 64)
			}

		case "char":
			charCount++
			g := glyph{}
			if v, ok := fields["id"]; ok {
				id, _ := strconv.Atoi(v)
				g.id = rune(id)
			}
			if v, ok := fields["xadvance"]; ok {
				val, _ := strconv.Atoi(v)
				g.xAdvance = int16(val)
			}

			if g.id >= 0 && g.id < asciiGlyphCount {
				f.asciiGlyphs[g.id] = g
				f.asciiSet[g.id] = true
			} else {
				if f.extGlyphs == nil {
					f.extGlyphs = make(map[rune]*glyph)
				}
				g := g
				f.extGlyphs[g.id] = &g
			}

		case "kerning":
			var first, second rune
			var amount int16
			if v, ok := fields["first"]; ok {
				val, _ := strconv.Atoi(v)
				first = rune(val)
			}
			if v, ok := fields["second"]; ok {
				val, _ := strconv.Atoi(v)
				second = rune(val)
			}
			if v, ok := fields["amount"]; ok {
				val, _ := strconv.Atoi(v)
				amount = int16(val)
			}
			if f.kernings == nil {
				f.kernings = make(map[[2]rune]int16)
			}
			f.kernings[[2]rune{first, second}] = amount
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tau: error reading .fnt data: %w", err)
	}
	if f.lineHeight == 0 {
		return nil, fmt.Errorf("tau: .fnt data missing common lineHeight")
	}
	if charCount == 0 {
		return nil, fmt.Errorf("tau: .fnt data has no char definitions")
	}
	if f.size == 0 {
		f.size = f.lineHeight
	}
	return f, nil
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Fields(s) {
		eq := strings.IndexByte(part, '=')
		if eq == -1 {
			continue
		}
		key := part[:eq]
		val := part[eq+1:]
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = val[1 : len(val)-1]
		}
		fields[key] = val
	}
	return fields
}

// --- TTFFont ---

// TTFFont measures with Ebitengine's text/v2 GoTextFace. One face is kept
// per distinct style so variation axes are applied once. Safe for concurrent
// use.
type TTFFont struct {
	source *text.GoTextFaceSource

	mu    sync.Mutex
	faces map[string]*text.GoTextFace
}

// LoadTTFFont parses TrueType or OpenType data.
func LoadTTFFont(ttfData []byte) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("tau: failed to parse TTF data: %w", err)
	}
	return &TTFFont{source: source, faces: make(map[string]*text.GoTextFace)}, nil
}

// Face returns the GoTextFace for a style, for rendering with text.Draw.
func (f *TTFFont) Face(style StyleMetrics) *text.GoTextFace {
	key := style.key()

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: style.Size}
	for _, v := range style.Variations {
		if len(v.Tag) != 4 {
			continue
		}
		face.SetVariation(text.MustParseTag(v.Tag), float32(v.Value))
	}
	f.faces[key] = face
	return face
}

// MeasureWidth implements TextMeasurer.
func (f *TTFFont) MeasureWidth(s string, style StyleMetrics) float64 {
	if s == "" || style.Size <= 0 {
		return 0
	}
	return text.Advance(s, f.Face(style)) + letterSpacing(s, style)
}

// LineHeight returns ascent + descent + line gap for the style.
func (f *TTFFont) LineHeight(style StyleMetrics) float64 {
	m := f.Face(style).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// --- ShapedFont ---

// ShapedFont measures with HarfBuzz shaping from go-text/typesetting, so
// ligatures and OpenType kerning affect the width. It needs no graphics
// context. Safe for concurrent use: the parsed font is shared and faces are
// created per call because go-text faces are not goroutine safe.
type ShapedFont struct {
	font *gofont.Font
	pool sync.Pool
}

// LoadShapedFont parses TrueType or OpenType data.
func LoadShapedFont(data []byte) (*ShapedFont, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tau: failed to parse font data: %w", err)
	}
	return &ShapedFont{
		font: face.Font,
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
	}, nil
}

// MeasureWidth implements TextMeasurer.
func (f *ShapedFont) MeasureWidth(s string, style StyleMetrics) float64 {
	if s == "" || style.Size <= 0 {
		return 0
	}
	face := gofont.NewFace(f.font)
	if vars := fontVariations(style.Variations); len(vars) > 0 {
		face.SetVariations(vars)
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(style.Size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := f.pool.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	f.pool.Put(shaper)

	return float64(out.Advance)/64 + letterSpacing(s, style)
}

func fontVariations(vs []FontVariation) []gofont.Variation {
	var out []gofont.Variation
	for _, v := range vs {
		if len(v.Tag) != 4 {
			continue
		}
		out = append(out, gofont.Variation{Tag: ot.MustNewTag(v.Tag), Value: float32(v.Value)})
	}
	return out
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
