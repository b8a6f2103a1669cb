package game

import (
	"testing"

	"dzone/internal/config"
	"dzone/internal/game/keytracker"
	"dzone/internal/geometry"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCameraCenterAndConvert(t *testing.T) {
	var c Camera
	c.CenterOn(geometry.Point{X: 10, Y: 20}, 200, 100)

	if c.X != 90 || c.Y != 30 {
		t.Fatalf("camera at (%v,%v), want (90,30)", c.X, c.Y)
	}
	// The centered point maps back to the middle of the view.
	if got := c.ToTown(100, 50); got != (geometry.Point{X: 10, Y: 20}) {
		t.Errorf("ToTown(100,50) = %+v", got)
	}
	if got := c.Origin(); got != (geometry.Point{X: 90, Y: 30}) {
		t.Errorf("Origin() = %+v", got)
	}

	c.Pan(-5, 5)
	if got := c.ToTown(100, 50); got != (geometry.Point{X: 15, Y: 15}) {
		t.Errorf("after pan ToTown(100,50) = %+v", got)
	}
}

func TestCameraDrag(t *testing.T) {
	c := Camera{X: 10, Y: 10}

	c.Drag(50, 50)
	if c.X != 10 || c.Y != 10 {
		t.Fatal("drag without StartDrag should not move the camera")
	}

	c.StartDrag(100, 100)
	c.Drag(110, 95)
	if c.X != 20 || c.Y != 5 {
		t.Errorf("camera at (%v,%v), want (20,5)", c.X, c.Y)
	}
	c.Drag(90, 100)
	if c.X != 0 || c.Y != 10 {
		t.Errorf("drag is relative to its start, camera at (%v,%v)", c.X, c.Y)
	}

	c.EndDrag()
	if c.Dragging() {
		t.Error("still dragging after EndDrag")
	}
}

func TestGridCenter(t *testing.T) {
	// A square grid centers on the vertical axis.
	p := GridCenter(9, 9)
	if p.X != 0 || p.Y != 64 {
		t.Errorf("GridCenter(9,9) = %+v, want (0,64)", p)
	}
}

func TestInsideView(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{319, 179, true},
		{320, 10, false},
		{-1, 10, false},
		{10, 180, false},
	}
	for _, tt := range tests {
		if got := insideView(tt.x, tt.y, 320, 180); got != tt.want {
			t.Errorf("insideView(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestViewSizeUsesScale(t *testing.T) {
	cfg := &config.Config{Display: config.DisplayConfig{ScreenWidth: 960, ScreenHeight: 540, Scale: 3}}
	g := &TownGame{config: cfg}
	if w, h := g.viewSize(); w != 320 || h != 180 {
		t.Errorf("viewSize() = %dx%d, want 320x180", w, h)
	}

	cfg.Display.Scale = 0
	if w, h := g.viewSize(); w != 960 || h != 540 {
		t.Errorf("zero scale should mean 1, got %dx%d", w, h)
	}
}

func TestStatsPanelBlocksPicking(t *testing.T) {
	g := &TownGame{}
	ui := NewUISystem(g)

	if ui.Contains(10, 10) {
		t.Error("hidden panel should not capture the mouse")
	}
	g.showStats = true
	if !ui.Contains(10, 10) {
		t.Error("visible panel should capture the mouse")
	}
	if ui.Contains(statsPanelX+statsPanelWidth+1, 10) {
		t.Error("point right of the panel should pass through")
	}
}

func TestKeyTrackerStep(t *testing.T) {
	k := keytracker.New()
	steps := []struct {
		pressed bool
		want    bool
	}{
		{false, false},
		{true, true},
		{true, false},
		{false, false},
		{true, true},
	}
	for i, s := range steps {
		if got := k.Step(ebiten.KeyF3, s.pressed); got != s.want {
			t.Errorf("step %d: Step(%v) = %v, want %v", i, s.pressed, got, s.want)
		}
	}
}
