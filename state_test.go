package tau

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLerpState_Endpoints(t *testing.T) {
	a := DefaultStartState
	a.RotateZ = -15
	a.Blur = 4
	b := DefaultEndState
	b.X = 20

	if diff := cmp.Diff(a, LerpState(a, b, 0)); diff != "" {
		t.Errorf("factor 0 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b, LerpState(a, b, 1)); diff != "" {
		t.Errorf("factor 1 (-want +got):\n%s", diff)
	}
}

func TestLerpState_Clamps(t *testing.T) {
	a := VisualState{Y: 10, Scale: 1}
	b := VisualState{Y: 0, Scale: 2}
	if got := LerpState(a, b, -1); got.Y != 10 || got.Scale != 1 {
		t.Errorf("factor -1 = %+v, want start", got)
	}
	if got := LerpState(a, b, 3); got.Y != 0 || got.Scale != 2 {
		t.Errorf("factor 3 = %+v, want end", got)
	}
	if got := LerpState(a, b, 0.5); got.Y != 5 || got.Scale != 1.5 {
		t.Errorf("factor 0.5 = %+v", got)
	}
}

func TestLerpState_DecorationSnaps(t *testing.T) {
	a := VisualState{DecorationLine: DecorationNone, DecorationThickness: 1}
	b := VisualState{DecorationLine: DecorationUnderline, DecorationThickness: 3}

	mid := LerpState(a, b, 0.99)
	if mid.DecorationLine != DecorationNone {
		t.Errorf("line before end = %v, want none", mid.DecorationLine)
	}
	end := LerpState(a, b, 1)
	if end.DecorationLine != DecorationUnderline || end.DecorationThickness != 3 {
		t.Errorf("end decoration = %v %v", end.DecorationLine, end.DecorationThickness)
	}
}

func TestDecorationLine_Parse(t *testing.T) {
	for _, d := range []DecorationLine{DecorationNone, DecorationUnderline, DecorationOverline, DecorationLineThrough} {
		if got := ParseDecorationLine(d.String()); got != d {
			t.Errorf("ParseDecorationLine(%q) = %v", d.String(), got)
		}
	}
	if ParseDecorationLine("wavy") != DecorationNone {
		t.Error("unknown keyword should map to none")
	}
}

func TestVisualState_JSON(t *testing.T) {
	s := DefaultHighlightEnd
	s.DecorationLine = DecorationLineThrough
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var out VisualState
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.DecorationLine != DecorationLineThrough {
		t.Errorf("DecorationLine = %v", out.DecorationLine)
	}
	if out.Fill.Hex() != "#1e2ad2" {
		t.Errorf("Fill = %v", out.Fill.Hex())
	}
}
