package tau

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Config is the declarative form of a widget's property panel. Lengths,
// colours and font-variation-settings are CSS strings.
type Config struct {
	Kind  string  `json:"kind"`
	Text  string  `json:"text"`
	Width float64 `json:"width"`
	Align string  `json:"align,omitempty"`

	TextStyle  StyleConfig      `json:"textStyle"`
	Transition TransitionConfig `json:"transition"`

	LineStagger float64 `json:"lineStagger"`
	WordStagger float64 `json:"wordStagger"`

	State1 StateConfig `json:"state1"`
	State2 StateConfig `json:"state2"`

	Preview        string  `json:"preview,omitempty"`
	PreviewPercent float64 `json:"previewPercent,omitempty"`

	Trigger string `json:"trigger,omitempty"`
	Amount  string `json:"amount,omitempty"`
	Replay  bool   `json:"replay,omitempty"`

	// Target is "page" or a section id such as "#intro".
	Target string `json:"target,omitempty"`
}

// StyleConfig is the text style block of a Config.
type StyleConfig struct {
	Family                string  `json:"family"`
	Size                  float64 `json:"size"`
	Weight                int     `json:"weight,omitempty"`
	Style                 string  `json:"style,omitempty"`
	LetterSpacing         string  `json:"letterSpacing"`
	LineHeight            string  `json:"lineHeight"`
	FontVariationSettings string  `json:"fontVariationSettings,omitempty"`
}

// TransitionConfig is the transition block of a Config.
type TransitionConfig struct {
	Type      string  `json:"type"`
	Duration  float64 `json:"duration,omitempty"`
	Ease      string  `json:"ease,omitempty"`
	Stiffness float64 `json:"stiffness,omitempty"`
	Damping   float64 `json:"damping,omitempty"`
	Mass      float64 `json:"mass,omitempty"`
	Delay     float64 `json:"delay,omitempty"`
}

// StateConfig is one named visual state of a Config.
type StateConfig struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	RotateX     float64 `json:"rotateX"`
	RotateY     float64 `json:"rotateY"`
	RotateZ     float64 `json:"rotateZ"`
	Scale       float64 `json:"scale"`
	Blur        float64 `json:"blur"`

	DecorationLine      string  `json:"decorationLine,omitempty"`
	DecorationThickness float64 `json:"decorationThickness,omitempty"`
	DecorationColor     string  `json:"decorationColor,omitempty"`
}

// DefaultConfig returns the panel defaults for kind.
func DefaultConfig(kind WidgetKind) Config {
	o := DefaultOptions(kind)
	return Config{
		Kind:  kind.String(),
		Text:  o.Text,
		Width: o.Width,
		Align: o.Align.String(),
		TextStyle: StyleConfig{
			Family:        o.Style.Family,
			Size:          o.Style.Size,
			Weight:        o.Style.Weight,
			Style:         o.Style.Style.String(),
			LetterSpacing: o.Style.LetterSpacing.String(),
			LineHeight:    o.Style.LineHeight.String(),
		},
		Transition: TransitionConfig{
			Type:      "spring",
			Stiffness: o.Transition.Spring.Stiffness,
			Damping:   o.Transition.Spring.Damping,
			Mass:      o.Transition.Spring.Mass,
		},
		LineStagger: o.LineStagger,
		WordStagger: o.WordStagger,
		State1:      stateConfig(o.Start),
		State2:      stateConfig(o.End),
		Preview:     "state1",
		Trigger:     o.Trigger.String(),
		Amount:      "some",
		Target:      "page",
	}
}

func stateConfig(s VisualState) StateConfig {
	return StateConfig{
		Fill:                s.Fill.Hex(),
		Stroke:              s.Stroke.Hex(),
		StrokeWidth:         s.StrokeWidth,
		X:                   s.X,
		Y:                   s.Y,
		RotateX:             s.RotateX,
		RotateY:             s.RotateY,
		RotateZ:             s.RotateZ,
		Scale:               s.Scale,
		Blur:                s.Blur,
		DecorationLine:      s.DecorationLine.String(),
		DecorationThickness: s.DecorationThickness,
		DecorationColor:     s.DecorationColor.Hex(),
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep the
// defaults of the file's kind.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tau: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses JSON config data. See LoadConfig.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("tau: parse config: %w", err)
	}
	kind := KindAnimatorAppear
	if head.Kind != "" {
		k, ok := ParseWidgetKind(head.Kind)
		if !ok {
			return Config{}, fmt.Errorf("tau: parse config: unknown kind %q", head.Kind)
		}
		kind = k
	}
	cfg := DefaultConfig(kind)
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tau: parse config: %w", err)
	}
	return cfg, nil
}

// WidgetKind returns the parsed kind.
func (c Config) WidgetKind() WidgetKind {
	k, _ := ParseWidgetKind(c.Kind)
	return k
}

// Options resolves the config into widget options. The measurer, progress
// source, sink and logger are left for the caller.
func (c Config) Options() (Options, error) {
	kind := c.WidgetKind()
	o := DefaultOptions(kind)
	o.Text = c.Text
	o.Width = c.Width
	o.Align = ParseTextAlign(c.Align)

	style, err := c.TextStyle.textStyle()
	if err != nil {
		return Options{}, err
	}
	o.Style = style

	tr, err := c.Transition.transition()
	if err != nil {
		return Options{}, err
	}
	o.Transition = tr
	o.LineStagger = c.LineStagger
	o.WordStagger = c.WordStagger

	if o.Start, err = c.State1.state(); err != nil {
		return Options{}, fmt.Errorf("tau: state1: %w", err)
	}
	if o.End, err = c.State2.state(); err != nil {
		return Options{}, fmt.Errorf("tau: state2: %w", err)
	}

	o.Preview = ParsePreview(c.Preview)
	o.PreviewPercent = c.PreviewPercent
	o.Trigger = ParseTriggerMode(c.Trigger)
	o.Amount = ParseAmount(c.Amount)
	o.Replay = c.Replay
	return o, nil
}

// SectionID returns the scroll target without its '#', or "" for the page.
func (c Config) SectionID() string {
	if c.Target == "" || c.Target == "page" {
		return ""
	}
	return strings.TrimPrefix(c.Target, "#")
}

// NewWidget builds the widget the config describes. A *ScrollProgress
// source is pointed at the config's Target first.
func (c Config) NewWidget(m TextMeasurer, src ProgressSource, logger *zap.Logger) (Widget, error) {
	o, err := c.Options()
	if err != nil {
		return nil, err
	}
	if sp, ok := src.(*ScrollProgress); ok {
		sp.SetTarget(c.SectionID())
	}
	o.Measurer = m
	o.Source = src
	o.Logger = logger
	return NewWidget(c.WidgetKind(), o), nil
}

func (s StyleConfig) textStyle() (TextStyle, error) {
	st := DefaultTextStyle
	if s.Family != "" {
		st.Family = s.Family
	}
	st.Size = s.Size
	if s.Weight > 0 {
		st.Weight = s.Weight
	}
	if s.Style == "italic" {
		st.Style = FontStyleItalic
	}
	if s.LetterSpacing != "" {
		l, err := ParseLength(s.LetterSpacing)
		if err != nil {
			return TextStyle{}, err
		}
		st.LetterSpacing = l
	}
	if s.LineHeight != "" {
		l, err := ParseLength(s.LineHeight)
		if err != nil {
			return TextStyle{}, err
		}
		st.LineHeight = l
	}
	vs, err := ParseVariationSettings(s.FontVariationSettings)
	if err != nil {
		return TextStyle{}, err
	}
	st.SetVariations(vs)
	return st, nil
}

// easings maps the transition ease names accepted in configs.
var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"easeIn":     ease.InCubic,
	"easeOut":    ease.OutCubic,
	"easeInOut":  ease.InOutCubic,
	"circIn":     ease.InCirc,
	"circOut":    ease.OutCirc,
	"circInOut":  ease.InOutCirc,
	"backIn":     ease.InBack,
	"backOut":    ease.OutBack,
	"backInOut":  ease.InOutBack,
	"anticipate": ease.InOutBack,
	"bounceOut":  ease.OutBounce,
}

func (t TransitionConfig) transition() (Transition, error) {
	switch t.Type {
	case "", "spring":
		return Transition{
			Type:   TransitionSpring,
			Spring: Spring{Stiffness: t.Stiffness, Damping: t.Damping, Mass: t.Mass},
			Delay:  t.Delay,
		}, nil
	case "tween":
		tr := Transition{Type: TransitionTween, Duration: t.Duration, Delay: t.Delay}
		if t.Ease != "" {
			fn, ok := easings[t.Ease]
			if !ok {
				return Transition{}, fmt.Errorf("tau: unknown ease %q", t.Ease)
			}
			tr.Ease = fn
		}
		return tr, nil
	}
	return Transition{}, fmt.Errorf("tau: unknown transition type %q", t.Type)
}

func (s StateConfig) state() (VisualState, error) {
	fill, err := parseColorOr(s.Fill, ColorBlack)
	if err != nil {
		return VisualState{}, err
	}
	stroke, err := parseColorOr(s.Stroke, ColorBlack)
	if err != nil {
		return VisualState{}, err
	}
	deco, err := parseColorOr(s.DecorationColor, ColorBlack)
	if err != nil {
		return VisualState{}, err
	}
	return VisualState{
		Fill:                fill,
		Stroke:              stroke,
		StrokeWidth:         s.StrokeWidth,
		X:                   s.X,
		Y:                   s.Y,
		RotateX:             s.RotateX,
		RotateY:             s.RotateY,
		RotateZ:             s.RotateZ,
		Scale:               s.Scale,
		Blur:                s.Blur,
		DecorationLine:      ParseDecorationLine(s.DecorationLine),
		DecorationThickness: s.DecorationThickness,
		DecorationColor:     deco,
	}, nil
}

func parseColorOr(s string, def Color) (Color, error) {
	if s == "" {
		return def, nil
	}
	return ParseColor(s)
}
