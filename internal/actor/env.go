package actor

import (
	"math/rand"

	"go.uber.org/zap"

	"dzone/internal/clock"
	"dzone/internal/config"
	"dzone/internal/geometry"
	"dzone/internal/sheet"
	"dzone/internal/world"
)

// World is what an actor needs from the town grid.
type World interface {
	WalkableHeightAt(x, y int) (float64, bool)
	ObjectAt(x, y int, z float64) (world.Object, bool)
	MoveObject(obj world.Object, pos geometry.Position)
	Reserve(owner world.Object, x, y int)
	Release(owner world.Object)
	FindPath(from geometry.Position, goals []world.Cell, maxNodes int) ([]world.Cell, bool)
}

// DrawOrder is the renderer's depth index.
type DrawOrder interface {
	UpdateDrawOrder(oldKey float64, sprite *Sprite, newKey float64)
}

// Env is the set of services shared by every actor in a town.
type Env struct {
	Clock     *clock.Clock
	World     World
	DrawOrder DrawOrder
	Sheet     *sheet.Sheet
	Config    *config.Config
	Rand      *rand.Rand
	Log       *zap.Logger

	// OnHalfway, when set, runs as a south or east move passes its half-way frame.
	OnHalfway func(a *Actor)
}

// withDefaults fills optional services so tests can pass a partial Env.
func (e *Env) withDefaults() *Env {
	if e.Clock == nil {
		e.Clock = clock.New()
	}
	if e.Sheet == nil {
		e.Sheet = sheet.Default()
	}
	if e.Config == nil {
		e.Config = &config.Config{}
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(1))
	}
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	if e.DrawOrder == nil {
		e.DrawOrder = nopDrawOrder{}
	}
	return e
}

type nopDrawOrder struct{}

func (nopDrawOrder) UpdateDrawOrder(float64, *Sprite, float64) {}
