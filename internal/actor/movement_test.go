package actor

import (
	"testing"

	"dzone/internal/geometry"
	"dzone/internal/world"
)

func TestTryMoveEast(t *testing.T) {
	env, _ := newTestEnv(newMockWorld())
	a := New(env, Options{UID: "a", Position: geometry.Position{X: 5, Y: 5}, Facing: geometry.North})

	dest, ok := a.TryMove(1, 0)
	if !ok {
		t.Fatal("TryMove(1,0) refused on flat ground")
	}
	if want := (geometry.Position{X: 6, Y: 5, Z: 0}); dest != want {
		t.Errorf("dest = %v, want %v", dest, want)
	}
	if a.Facing() != geometry.East {
		t.Errorf("facing = %v, want east", a.Facing())
	}
	if a.Moving() || a.UnWalkable() {
		t.Error("TryMove must not start a move")
	}
}

func TestTryMoveBlockedFromAbove(t *testing.T) {
	w := newMockWorld()
	env, _ := newTestEnv(w)
	a := New(env, Options{UID: "a", Position: geometry.Position{X: 5, Y: 5}})
	rider := &nudgeRecorder{}
	w.MoveObject(rider, geometry.Position{X: 5, Y: 5, Z: 0.5})

	if _, ok := a.TryMove(0, 1); ok {
		t.Error("TryMove should refuse while something stands on the actor")
	}
	if rider.nudges != 1 {
		t.Errorf("rider nudged %d times, want 1", rider.nudges)
	}
	if a.Facing() != geometry.South {
		t.Errorf("facing = %v, want south even when refused", a.Facing())
	}
}

func TestTryMoveHeights(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		height float64
		block  bool
		ok     bool
	}{
		{"half step up", 0, -1, 0.5, false, true},
		{"half step down", -1, 0, -0.5, false, true},
		{"full level up", 1, 0, 1, false, false},
		{"full level down", 0, 1, -1, false, false},
		{"blocked cell", 1, 0, 0, true, false},
		{"diagonal", 1, 1, 0, false, false},
		{"no step", 0, 0, 0, false, false},
		{"long step", 2, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newMockWorld()
			c := world.Cell{X: 5 + tt.dx, Y: 5 + tt.dy}
			w.heights[c] = tt.height
			w.blocked[c] = tt.block
			env, _ := newTestEnv(w)
			a := New(env, Options{UID: "a", Position: geometry.Position{X: 5, Y: 5}})

			dest, ok := a.TryMove(tt.dx, tt.dy)
			if ok != tt.ok {
				t.Fatalf("TryMove(%d,%d) ok = %v, want %v", tt.dx, tt.dy, ok, tt.ok)
			}
			if ok && dest.Z != tt.height {
				t.Errorf("dest z = %v, want %v", dest.Z, tt.height)
			}
		})
	}
}

func TestStartMoveLifecycle(t *testing.T) {
	w := newMockWorld()
	env, draw := newTestEnv(w)
	a := New(env, Options{UID: "a", Position: geometry.Position{X: 5, Y: 5}})
	draw.updates = nil

	completions := 0
	var result MoveResult
	a.OnMoveComplete(func(r MoveResult) {
		completions++
		result = r
	})

	dest := geometry.Position{X: 6, Y: 5}
	if !a.StartMove(dest) {
		t.Fatal("StartMove refused")
	}
	if w.reserved[world.Cell{X: 6, Y: 5}] != a {
		t.Error("destination should be reserved while moving")
	}

	total := moveTicks(env)
	for tick := 1; tick <= total+5; tick++ {
		env.Clock.Advance()
		_, hasDest := a.Destination()
		if a.UnWalkable() != hasDest || a.Moving() != hasDest {
			t.Fatalf("tick %d: unWalkable=%v moving=%v destination=%v", tick, a.UnWalkable(), a.Moving(), hasDest)
		}
		if tick < total && !a.UnWalkable() {
			t.Fatalf("tick %d: move finished early", tick)
		}
		if tick < total && a.Position() != (geometry.Position{X: 5, Y: 5}) {
			t.Fatalf("tick %d: position committed before the animation ended", tick)
		}
	}

	if a.Position() != dest {
		t.Errorf("position = %v, want %v", a.Position(), dest)
	}
	if _, ok := a.Destination(); ok || a.UnWalkable() {
		t.Error("destination and unWalkable should be cleared after commit")
	}
	if completions != 1 {
		t.Errorf("move complete fired %d times, want 1", completions)
	}
	if result.From != (geometry.Position{X: 5, Y: 5}) || result.To != dest || result.Seq != 1 {
		t.Errorf("result = %+v", result)
	}
	if len(w.reserved) != 0 {
		t.Errorf("reservation not released: %v", w.reserved)
	}
	if obj, ok := w.ObjectAt(6, 5, 0); !ok || obj != a {
		t.Error("world index should hold the actor at its destination")
	}
	if a.Screen() != geometry.Anchor(dest) {
		t.Errorf("screen = %v, want %v", a.Screen(), geometry.Anchor(dest))
	}

	// The draw-order key moves at the configured frame, then the commit settles it.
	drawTick := uint64(env.Config.GetFramesPerStep() * env.Config.GetDrawOrderFrame())
	if len(draw.updates) != 2 {
		t.Fatalf("draw updates = %+v", draw.updates)
	}
	if u := draw.updates[0]; u.tick != drawTick || u.oldKey != 10 || u.newKey != 11 {
		t.Errorf("checkpoint update = %+v, want tick %d 10->11", u, drawTick)
	}
	if u := draw.updates[1]; u.tick != uint64(total) || u.oldKey != 11 || u.newKey != 11 {
		t.Errorf("commit update = %+v", u)
	}
	if a.DrawKey() != 11 {
		t.Errorf("draw key = %v, want 11", a.DrawKey())
	}
}

func TestMoveInterpolatesScreen(t *testing.T) {
	env, _ := newTestEnv(newMockWorld())
	pos := geometry.Position{X: 5, Y: 5}
	a := New(env, Options{UID: "a", Position: pos})
	dest := geometry.Position{X: 6, Y: 5, Z: 0.5}
	a.StartMove(dest)

	half := moveTicks(env) / 2
	advance(env, half)
	want := geometry.Project(geometry.Anchor(pos), pos, dest, true, 0.5)
	if a.Screen() != want {
		t.Errorf("screen at half way = %v, want %v", a.Screen(), want)
	}
	if a.Frame() != half/env.Config.GetFramesPerStep() {
		t.Errorf("frame = %d, want %d", a.Frame(), half/env.Config.GetFramesPerStep())
	}
	t.Logf("half way: frame %d screen %v", a.Frame(), a.Screen())
}

func TestStartMoveWhileMoving(t *testing.T) {
	env, _ := newTestEnv(newMockWorld())
	a := New(env, Options{UID: "a", Position: geometry.Position{X: 5, Y: 5}})
	if !a.StartMove(geometry.Position{X: 6, Y: 5}) {
		t.Fatal("first StartMove refused")
	}
	if a.StartMove(geometry.Position{X: 4, Y: 5}) {
		t.Error("second StartMove should be refused while moving")
	}
	advance(env, moveTicks(env))
	if a.Position() != (geometry.Position{X: 6, Y: 5}) {
		t.Errorf("position = %v", a.Position())
	}
}

func TestHalfwayHook(t *testing.T) {
	tests := []struct {
		name  string
		dest  geometry.Position
		calls int
	}{
		{"east", geometry.Position{X: 6, Y: 5}, 1},
		{"south", geometry.Position{X: 5, Y: 6}, 1},
		{"north", geometry.Position{X: 5, Y: 4}, 0},
		{"west", geometry.Position{X: 4, Y: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(newMockWorld())
			calls := 0
			env.OnHalfway = func(a *Actor) {
				calls++
				if a.Frame() != env.Config.GetHalfwayFrame() {
					t.Errorf("hook ran at frame %d", a.Frame())
				}
			}
			a := New(env, Options{UID: "a", Position: geometry.Position{X: 5, Y: 5}})
			a.StartMove(tt.dest)
			advance(env, moveTicks(env))
			if calls != tt.calls {
				t.Errorf("hook calls = %d, want %d", calls, tt.calls)
			}
		})
	}
}

func TestMoveImmediate(t *testing.T) {
	w := newMockWorld()
	env, draw := newTestEnv(w)
	a := New(env, Options{UID: "a", Position: geometry.Position{X: 2, Y: 3}})
	draw.updates = nil
	w.moves = nil

	a.Move(geometry.Position{}, false)
	a.Move(geometry.Position{X: 2, Y: 3}, true)
	if len(w.moves) != 0 || len(draw.updates) != 0 {
		t.Errorf("moving nowhere should be a no-op, got moves %v draws %v", w.moves, draw.updates)
	}

	a.Move(geometry.Position{X: 1, Z: 0.5}, false)
	want := geometry.Position{X: 3, Y: 3, Z: 0.5}
	if a.Position() != want {
		t.Errorf("relative move: position = %v, want %v", a.Position(), want)
	}
	if len(w.moves) != 1 || w.moves[0] != want {
		t.Errorf("world moves = %v", w.moves)
	}
	if len(draw.updates) != 1 || draw.updates[0].oldKey != 5 || draw.updates[0].newKey != 6 {
		t.Errorf("draw updates = %+v", draw.updates)
	}
	if a.Screen() != geometry.Anchor(want) {
		t.Errorf("screen = %v", a.Screen())
	}

	a.Move(geometry.Position{X: 0, Y: 0}, true)
	if a.Position() != (geometry.Position{}) {
		t.Errorf("absolute move to the origin: position = %v", a.Position())
	}
}

func TestStackedActorIsAskedToGetOff(t *testing.T) {
	g := world.NewGrid(6, 6)
	env, _ := newTestEnv(g)
	below := New(env, Options{UID: "below", Position: geometry.Position{X: 2, Y: 2}})
	above := New(env, Options{UID: "above", Position: geometry.Position{X: 2, Y: 2, Z: Height}})
	above.UpdatePresence(Online)

	if h, ok := g.WalkableHeightAt(2, 2); !ok || h != 1 {
		t.Fatalf("stack height = %v, %v", h, ok)
	}
	if _, ok := below.TryMove(1, 0); ok {
		t.Fatal("actor with a rider must not move")
	}
	if !above.Moving() {
		t.Fatal("the rider's wander should hop off when asked")
	}
	if !above.UnWalkable() {
		t.Error("moving rider should be unwalkable")
	}
	if _, ok := g.WalkableHeightAt(2, 2); ok {
		t.Error("a stack topped by a moving actor should not be walkable")
	}

	advance(env, moveTicks(env))
	if above.Position().Z != 0 {
		t.Errorf("rider should land on the ground, got %v", above.Position())
	}
	if _, ok := below.TryMove(1, 0); !ok {
		t.Error("actor should be free to move once the rider is off")
	}
}
