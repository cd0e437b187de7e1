package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/tau"
	"go.uber.org/zap"
)

func decodeFrame(t *testing.T, data []byte) tau.Frame {
	t.Helper()
	var f tau.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode frame: %v\n%s", err, data)
	}
	return f
}

func TestRun_ScrollKind(t *testing.T) {
	var buf bytes.Buffer
	p := params{kind: "animatorScroll", text: "hello world", width: 1000, progress: 1, view: 1}
	if err := run(p, &buf, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	f := decodeFrame(t, buf.Bytes())
	if f.Widget != "animatorScroll" || f.Text != "hello world" {
		t.Errorf("frame = %q %q", f.Widget, f.Text)
	}
	if len(f.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(f.Lines))
	}
	for _, row := range f.Factors {
		for _, v := range row {
			if v != 1 {
				t.Errorf("factor = %v, want 1 at full progress", v)
			}
		}
	}
}

func TestRun_ExplicitZeroProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.json")
	cfg := `{"kind": "highlighterScroll", "text": "a b", "width": 1000, "previewPercent": 50}`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := run(params{configPath: path, progress: 0, view: 1}, &buf, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	f := decodeFrame(t, buf.Bytes())
	if len(f.Clips) != 1 || f.Clips[0] != tau.ResolveHighlight(0) {
		t.Errorf("clips = %+v, want progress 0 rather than the preview", f.Clips)
	}
}

func TestRun_AppearAdvances(t *testing.T) {
	var buf bytes.Buffer
	p := params{kind: "animatorAppear", text: "one two", width: 1000, view: 1, seconds: 30}
	if err := run(p, &buf, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	f := decodeFrame(t, buf.Bytes())
	if f.Trigger != "inView" {
		t.Errorf("trigger = %q, want inView", f.Trigger)
	}
	for _, row := range f.Factors {
		for _, v := range row {
			if v != 1 {
				t.Errorf("factor = %v, want 1 after 30s", v)
			}
		}
	}
}

func TestRun_Script(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.json")
	data := `{"steps": [{"action": "progress", "value": 0.5}, {"action": "snapshot", "label": "mid"}]}`
	if err := os.WriteFile(script, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	p := params{kind: "highlighterScroll", text: "a b c", width: 1000, scriptPath: script}
	if err := run(p, &buf, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	var shots []tau.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &shots); err != nil {
		t.Fatal(err)
	}
	if len(shots) != 1 || shots[0].Label != "mid" || len(shots[0].Frame.Clips) == 0 {
		t.Errorf("snapshots = %+v", shots)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.json")
	if err := os.WriteFile(path, []byte(`{"kind": "highlighterAppear", "text": "from file", "width": 200}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(params{configPath: path, width: 640})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WidgetKind() != tau.KindHighlighterAppear || cfg.Text != "from file" || cfg.Width != 640 {
		t.Errorf("config = %+v", cfg)
	}

	cfg, err = loadConfig(params{})
	if err != nil || cfg.WidgetKind() != tau.KindAnimatorAppear {
		t.Errorf("default config = %v, %v", cfg.Kind, err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := loadConfig(params{kind: "marquee"}); err == nil {
		t.Error("unknown kind should fail")
	}
	if _, err := loadConfig(params{configPath: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("missing config should fail")
	}
}
