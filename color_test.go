package tau

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000", Color{0, 0, 0, 1}},
		{"#fff", Color{1, 1, 1, 1}},
		{"#FF0000", Color{1, 0, 0, 1}},
		{"#00ff0000", Color{0, 1, 0, 0}},
		{"transparent", Color{}},
		{"rgb(255, 0, 255)", Color{1, 0, 1, 1}},
		{"rgba(0, 0, 255, 0.5)", Color{0, 0, 1, 0.5}},
		{"rgb(0 255 0 / 25%)", Color{0, 1, 0, 0.25}},
		{"rgb(100%, 0%, 0%)", Color{1, 0, 0, 1}},
		{"  RGB(255,255,255)  ", Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if !colorNear(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "blue", "#12", "#12345", "#gggggg", "rgb(1, 2)", "rgb(1px, 2, 3)", "hsl(0, 0%, 0%)"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q): expected error", in)
		}
	}
}

func TestMustParseColor_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("nope")
}

func TestColor_Hex(t *testing.T) {
	if got := highlightBlue.Hex(); got != "#1e2ad2" {
		t.Errorf("Hex = %q, want #1e2ad2", got)
	}
	c := MustParseColor("#1E2AD2")
	if got := c.Hex(); got != "#1e2ad2" {
		t.Errorf("round trip Hex = %q, want #1e2ad2", got)
	}
}

func TestColor_String(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.3333}.String()
	if got != "rgba(255, 128, 0, 0.333)" {
		t.Errorf("String = %q", got)
	}
}

func TestColor_JSON(t *testing.T) {
	data, err := json.Marshal(struct{ C Color }{Color{R: 1, A: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"C":"rgba(255, 0, 0, 1)"}` {
		t.Errorf("marshal = %s", data)
	}
	var out struct{ C Color }
	if err := json.Unmarshal([]byte(`{"C":"#00f"}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.C != (Color{B: 1, A: 1}) {
		t.Errorf("unmarshal = %+v", out.C)
	}
}

func colorNear(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
