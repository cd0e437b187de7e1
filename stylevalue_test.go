package tau

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"18px", Px(18)},
		{"1.2em", Em(1.2)},
		{"120%", Percent(120)},
		{"0", Length{}},
		{"-0.05em", Em(-0.05)},
		{".5em", Em(0.5)},
		{" 2PX ", Px(2)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if err != nil {
				t.Fatalf("ParseLength: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLength(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLength_Invalid(t *testing.T) {
	for _, in := range []string{"", "px", "abc", "12 px extra", "1,2"} {
		if _, err := ParseLength(in); err == nil {
			t.Errorf("ParseLength(%q): expected error", in)
		}
	}
}

func TestLength_StringRoundTrip(t *testing.T) {
	for _, l := range []Length{Px(18), Em(-0.02), Percent(120), {Value: 1.5}} {
		got, err := ParseLength(l.String())
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", l.String(), err)
		}
		if got != l {
			t.Errorf("round trip %q = %+v, want %+v", l.String(), got, l)
		}
	}
}

func TestParseInset(t *testing.T) {
	tests := []struct {
		in   string
		want Inset
	}{
		{"inset(10%)", Inset{10, 10, 10, 10}},
		{"inset(10% 20%)", Inset{10, 20, 10, 20}},
		{"inset(1% 2% 3%)", Inset{1, 2, 3, 2}},
		{"inset(-100% 0% -100% 100%)", Inset{-100, 0, -100, 100}},
		{"inset(0 50 0 0)", Inset{0, 50, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInset(tt.in)
			if err != nil {
				t.Fatalf("ParseInset: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseInset(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInset_Invalid(t *testing.T) {
	for _, in := range []string{"inset()", "inset(1% 2% 3% 4% 5%)", "inset(10px)", "rect(0 0 0 0)", "inset(10%"} {
		if _, err := ParseInset(in); err == nil {
			t.Errorf("ParseInset(%q): expected error", in)
		}
	}
}

func TestInset_StringRoundTrip(t *testing.T) {
	in := HighlightCover.From
	if in.String() != "inset(-100% 0% -100% 0%)" {
		t.Errorf("String = %q", in.String())
	}
	got, err := ParseInset(in.String())
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestParseVariationSettings(t *testing.T) {
	got, err := ParseVariationSettings(`"wght" 200, "opsz" 16`)
	if err != nil {
		t.Fatalf("ParseVariationSettings: %v", err)
	}
	want := []FontVariation{{Tag: "wght", Value: 200}, {Tag: "opsz", Value: 16}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	for _, empty := range []string{"", "normal", " NORMAL "} {
		got, err := ParseVariationSettings(empty)
		if err != nil || got != nil {
			t.Errorf("ParseVariationSettings(%q) = %v, %v; want nil, nil", empty, got, err)
		}
	}
}

func TestParseVariationSettings_Invalid(t *testing.T) {
	for _, in := range []string{`wght 200`, `"wg" 200`, `"wght" 200px`, `"wght"`, `"wght" 1 "opsz" 2`} {
		if _, err := ParseVariationSettings(in); err == nil {
			t.Errorf("ParseVariationSettings(%q): expected error", in)
		}
	}
}

func TestVariationSettings_RoundTrip(t *testing.T) {
	m := StyleMetrics{Variations: []FontVariation{{"wght", 650}, {"slnt", -10}, {"GRAD", 0.5}}}
	got, err := ParseVariationSettings(m.VariationSettings())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m.Variations, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
