package geometry

import (
	"math"
	"testing"
)

func TestScreenDeltaRatios(t *testing.T) {
	tests := []struct {
		name string
		d    Position
		want Point
	}{
		{"east", Position{1, 0, 0}, Point{16, 8}},
		{"south", Position{0, 1, 0}, Point{-16, 8}},
		{"west", Position{-1, 0, 0}, Point{-16, -8}},
		{"north", Position{0, -1, 0}, Point{16, -8}},
		{"up half level", Position{0, 0, 0.5}, Point{0, -8}},
		{"up a level", Position{0, 0, 1}, Point{0, -16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScreenDelta(tt.d); got != tt.want {
				t.Errorf("ScreenDelta(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}

	// One level of height must cover twice the vertical screen travel of a single axis step.
	stepY := ScreenDelta(Position{X: 1}).Y
	levelY := -ScreenDelta(Position{Z: 1}).Y
	if levelY != 2*stepY {
		t.Errorf("level travel %v should be twice axis travel %v", levelY, stepY)
	}
}

func TestProjectEndpoints(t *testing.T) {
	pos := Position{5, 5, 0}
	dest := Position{6, 5, 0.5}
	anchor := Anchor(pos)

	if got := Project(anchor, pos, dest, true, 0); got != anchor {
		t.Errorf("progress 0 = %v, want pre-move anchor %v", got, anchor)
	}
	if got, want := Project(anchor, pos, dest, true, 1), Anchor(dest); got != want {
		t.Errorf("progress 1 = %v, want destination anchor %v", got, want)
	}
	a := Project(anchor, pos, dest, true, 0.4)
	b := Project(anchor, pos, dest, true, 0.4)
	if a != b {
		t.Errorf("projection not idempotent: %v vs %v", a, b)
	}
	if got := Project(anchor, pos, dest, false, 0.7); got != anchor {
		t.Errorf("no move should return anchor, got %v", got)
	}
	if got := Project(anchor, pos, dest, true, 3); got != Anchor(dest) {
		t.Errorf("progress above 1 should clamp, got %v", got)
	}
	if got := Project(anchor, pos, dest, true, math.NaN()); got != anchor {
		t.Errorf("NaN progress should clamp to 0, got %v", got)
	}
}

func TestFacingOf(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Facing
	}{
		{1, 0, East},
		{-1, 0, West},
		{0, -1, North},
		{0, 1, South},
		{0, 0, South},
	}
	for _, tt := range tests {
		if got := FacingOf(tt.dx, tt.dy); got != tt.want {
			t.Errorf("FacingOf(%v,%v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
		dx, dy := tt.want.Step()
		if tt.dx != 0 || tt.dy != 0 {
			if float64(dx) != tt.dx || float64(dy) != tt.dy {
				t.Errorf("%v.Step() = (%d,%d), want (%v,%v)", tt.want, dx, dy, tt.dx, tt.dy)
			}
		}
	}
}

func TestTalkingFacing(t *testing.T) {
	want := map[Facing]Facing{North: East, West: South, South: South, East: East}
	for in, out := range want {
		if got := in.TalkingFacing(); got != out {
			t.Errorf("%v talking facing = %v, want %v", in, got, out)
		}
	}
}

func TestParseFacing(t *testing.T) {
	for _, f := range Facings {
		got, ok := ParseFacing(f.String())
		if !ok || got != f {
			t.Errorf("ParseFacing(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := ParseFacing("up"); ok {
		t.Error("ParseFacing should reject unknown names")
	}
	var f Facing
	if err := f.UnmarshalText([]byte("WEST")); err != nil || f != West {
		t.Errorf("UnmarshalText(WEST) = %v, %v", f, err)
	}
	if err := f.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error for unknown facing")
	}
}

func TestDistanceIgnoresHeight(t *testing.T) {
	if d := Distance(Position{0, 0, 0}, Position{3, 4, 9}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}
