package actor

import (
	"math/rand"

	"dzone/internal/clock"
	"dzone/internal/config"
	"dzone/internal/geometry"
	"dzone/internal/sheet"
	"dzone/internal/world"
)

// mockWorld implements World with flat ground at height 0 unless told otherwise.
type mockWorld struct {
	heights  map[world.Cell]float64
	blocked  map[world.Cell]bool
	objects  map[[3]float64]world.Object
	placed   map[world.Object][3]float64
	reserved map[world.Cell]world.Object
	moves    []geometry.Position
}

func newMockWorld() *mockWorld {
	return &mockWorld{
		heights:  make(map[world.Cell]float64),
		blocked:  make(map[world.Cell]bool),
		objects:  make(map[[3]float64]world.Object),
		placed:   make(map[world.Object][3]float64),
		reserved: make(map[world.Cell]world.Object),
	}
}

func (m *mockWorld) WalkableHeightAt(x, y int) (float64, bool) {
	c := world.Cell{X: x, Y: y}
	if m.blocked[c] || m.reserved[c] != nil {
		return 0, false
	}
	return m.heights[c], true
}

func (m *mockWorld) ObjectAt(x, y int, z float64) (world.Object, bool) {
	obj, ok := m.objects[[3]float64{float64(x), float64(y), z}]
	return obj, ok
}

func (m *mockWorld) MoveObject(obj world.Object, pos geometry.Position) {
	if old, ok := m.placed[obj]; ok {
		delete(m.objects, old)
	}
	key := [3]float64{pos.X, pos.Y, pos.Z}
	m.objects[key] = obj
	m.placed[obj] = key
	m.moves = append(m.moves, pos)
}

func (m *mockWorld) Reserve(owner world.Object, x, y int) {
	m.reserved[world.Cell{X: x, Y: y}] = owner
}

func (m *mockWorld) Release(owner world.Object) {
	for c, o := range m.reserved {
		if o == owner {
			delete(m.reserved, c)
		}
	}
}

func (m *mockWorld) FindPath(geometry.Position, []world.Cell, int) ([]world.Cell, bool) {
	return nil, false
}

// nudgeRecorder is an object that counts get-off-me requests.
type nudgeRecorder struct {
	nudges int
}

func (n *nudgeRecorder) Height() float64 { return Height }
func (n *nudgeRecorder) Walkable() bool  { return true }
func (n *nudgeRecorder) GetOffMe()       { n.nudges++ }

type drawUpdate struct {
	oldKey, newKey float64
	tick           uint64
}

// recordingDrawOrder records every draw-order update with the tick it happened on.
type recordingDrawOrder struct {
	clock   *clock.Clock
	updates []drawUpdate
}

func (r *recordingDrawOrder) UpdateDrawOrder(oldKey float64, _ *Sprite, newKey float64) {
	r.updates = append(r.updates, drawUpdate{oldKey: oldKey, newKey: newKey, tick: r.clock.Ticks()})
}

// stubBehavior counts detaches.
type stubBehavior struct {
	kind     BehaviorKind
	detaches int
}

func (s *stubBehavior) Kind() BehaviorKind { return s.kind }
func (s *stubBehavior) Detach()            { s.detaches++ }

// quietConfig keeps wandering out of the way of the test at hand.
func quietConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Behavior.WanderDelayMin = 100000
	cfg.Behavior.WanderDelayMax = 100000
	return cfg
}

func newTestEnv(w World) (*Env, *recordingDrawOrder) {
	c := clock.New()
	draw := &recordingDrawOrder{clock: c}
	return &Env{
		Clock:     c,
		World:     w,
		DrawOrder: draw,
		Sheet:     sheet.Default(),
		Config:    quietConfig(),
		Rand:      rand.New(rand.NewSource(42)),
	}, draw
}

func advance(env *Env, ticks int) {
	for i := 0; i < ticks; i++ {
		env.Clock.Advance()
	}
}

func moveTicks(env *Env) int {
	return env.Config.GetFramesPerStep() * env.Sheet.Animation.Frames
}
