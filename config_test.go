package tau

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tanema/gween/ease"
)

func TestDefaultConfig_MatchesDefaultOptions(t *testing.T) {
	for _, kind := range []WidgetKind{KindAnimatorAppear, KindAnimatorScroll, KindHighlighterAppear, KindHighlighterScroll} {
		t.Run(kind.String(), func(t *testing.T) {
			o, err := DefaultConfig(kind).Options()
			if err != nil {
				t.Fatalf("Options: %v", err)
			}
			if diff := cmp.Diff(DefaultOptions(kind), o, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("options (-want +got):\n%s", diff)
			}
		})
	}
}

const highlighterConfig = `{
	"kind": "highlighterScroll",
	"text": "Delftware originated in Delft.",
	"width": 420,
	"align": "center",
	"textStyle": {
		"family": "Inter",
		"size": 24,
		"letterSpacing": "-0.02em",
		"lineHeight": "1.5",
		"fontVariationSettings": "\"wght\" 300, \"GRAD\" 50"
	},
	"transition": {"type": "tween", "duration": 0.6, "ease": "easeOut", "delay": 0.1},
	"lineStagger": 30,
	"state2": {"fill": "#ff0000", "decorationLine": "underline"},
	"previewPercent": 30,
	"target": "#intro"
}`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(highlighterConfig))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.WidgetKind() != KindHighlighterScroll {
		t.Errorf("kind = %v", cfg.WidgetKind())
	}
	if cfg.WordStagger != 50 {
		t.Errorf("missing wordStagger should keep the default, got %v", cfg.WordStagger)
	}
	if cfg.SectionID() != "intro" {
		t.Errorf("SectionID = %q, want intro", cfg.SectionID())
	}

	o, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if o.Width != 420 || o.Align != TextAlignCenter || o.PreviewPercent != 30 || o.LineStagger != 30 {
		t.Errorf("options = %+v", o)
	}
	if o.Style.Size != 24 || o.Style.LetterSpacing != Em(-0.02) || o.Style.LineHeight != (Length{Value: 1.5}) {
		t.Errorf("style = %+v", o.Style)
	}
	if !o.Style.Axes.Wght.Enabled || o.Style.Axes.Wght.Value != 300 || len(o.Style.Axes.Custom) != 1 {
		t.Errorf("axes = %+v", o.Style.Axes)
	}
	if o.Transition.Type != TransitionTween || o.Transition.Duration != 0.6 || o.Transition.Delay != 0.1 {
		t.Errorf("transition = %+v", o.Transition)
	}
	if got, want := o.Transition.Ease(0.5, 0, 1, 1), ease.OutCubic(0.5, 0, 1, 1); got != want {
		t.Errorf("ease at half = %v, want OutCubic %v", got, want)
	}
	if o.End.Fill != (Color{R: 1, A: 1}) || o.End.DecorationLine != DecorationUnderline {
		t.Errorf("state2 = %+v", o.End)
	}
	// state2 keeps the kind's defaults for fields the file leaves out.
	if o.End.DecorationThickness != 1 || o.Start != DefaultHighlightStart {
		t.Errorf("defaults lost: start %+v end %+v", o.Start, o.End)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `{`,
		"unknown kind":   `{"kind": "marquee"}`,
		"wrong type":     `{"width": "wide"}`,
		"bad color type": `{"state1": {"fill": 3}}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_OptionsErrors(t *testing.T) {
	tests := map[string]func(*Config){
		"bad length":     func(c *Config) { c.TextStyle.LetterSpacing = "wide" },
		"bad line":       func(c *Config) { c.TextStyle.LineHeight = "12pt" },
		"bad variations": func(c *Config) { c.TextStyle.FontVariationSettings = `"wg" 1` },
		"bad ease":       func(c *Config) { c.Transition = TransitionConfig{Type: "tween", Ease: "wobble"} },
		"bad type":       func(c *Config) { c.Transition.Type = "keyframes" },
		"bad fill":       func(c *Config) { c.State1.Fill = "blurple" },
		"bad stroke":     func(c *Config) { c.State2.Stroke = "#12" },
		"bad decoration": func(c *Config) { c.State2.DecorationColor = "rgb(1)" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig(KindAnimatorAppear)
			mutate(&cfg)
			if _, err := cfg.Options(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Eases(t *testing.T) {
	for name := range easings {
		cfg := DefaultConfig(KindAnimatorAppear)
		cfg.Transition = TransitionConfig{Type: "tween", Duration: 1, Ease: name}
		o, err := cfg.Options()
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if o.Transition.Ease == nil {
			t.Errorf("%s: ease not set", name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.json")
	if err := os.WriteFile(path, []byte(highlighterConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Text != "Delftware originated in Delft." {
		t.Errorf("text = %q", cfg.Text)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestConfig_NewWidget(t *testing.T) {
	cfg, err := ParseConfig([]byte(highlighterConfig))
	if err != nil {
		t.Fatal(err)
	}
	src := NewProgressValue(0)
	w, err := cfg.NewWidget(fixedWidth, src, nil)
	if err != nil {
		t.Fatalf("NewWidget: %v", err)
	}
	defer w.Close()
	if _, ok := w.(*HighlighterScroll); !ok {
		t.Fatalf("widget = %T, want *HighlighterScroll", w)
	}
	if w.Layout().Empty() {
		t.Error("widget should lay out with the given measurer")
	}
	if src.Subscribers() != 1 {
		t.Errorf("source subscribers = %d, want 1", src.Subscribers())
	}

	bad := cfg
	bad.State1.Fill = "nope"
	if _, err := bad.NewWidget(fixedWidth, src, nil); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestConfig_NewWidgetTargetsSection(t *testing.T) {
	cfg := DefaultConfig(KindAnimatorScroll)
	cfg.Target = "#intro"
	sp := NewScrollProgress(2000, 1000, SectionMap{"intro": {Y: 1000, Height: 500}}, nil)
	w, err := cfg.NewWidget(fixedWidth, sp, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// Page progress 0.625 is half way through the section's [0.5, 0.75] share.
	sp.SetScroll(625)
	if sp.PageProgress() != 0.625 || sp.Value() != 0.5 {
		t.Errorf("page = %v value = %v, want 0.625 and 0.5", sp.PageProgress(), sp.Value())
	}

	page := DefaultConfig(KindAnimatorScroll)
	sp2 := NewScrollProgress(2000, 1000, SectionMap{"intro": {Y: 1000, Height: 500}}, nil)
	if _, err := page.NewWidget(fixedWidth, sp2, nil); err != nil {
		t.Fatal(err)
	}
	sp2.SetScroll(625)
	if sp2.Value() != 0.625 {
		t.Errorf("page target value = %v, want 0.625", sp2.Value())
	}
}

func TestConfig_SectionID(t *testing.T) {
	for target, want := range map[string]string{"": "", "page": "", "#intro": "intro", "outro": "outro"} {
		if got := (Config{Target: target}).SectionID(); got != want {
			t.Errorf("SectionID(%q) = %q, want %q", target, got, want)
		}
	}
}
