package actor

import (
	"go.uber.org/zap"

	"dzone/internal/clock"
	"dzone/internal/geometry"
	"dzone/internal/world"
)

// GoTo walks the actor next to a target actor, then hands control back
// through StopGoTo. The path is replanned whenever the target finishes a move
// or a step turns out to be blocked.
type GoTo struct {
	actor  *Actor
	target *Actor

	detached    bool
	path        []world.Cell
	retries     int
	targetMoved bool

	task      *clock.Task
	offMove   func()
	offTarget func()
}

func newGoTo(a, target *Actor) *GoTo {
	g := &GoTo{actor: a, target: target}
	g.offTarget = target.moveComplete.On(func(MoveResult) { g.targetMoved = true })
	g.task = a.env.Clock.Delay(1, g.next)
	return g
}

func (g *GoTo) Kind() BehaviorKind { return KindGoTo }

// Target is the actor being approached.
func (g *GoTo) Target() *Actor { return g.target }

func (g *GoTo) Detach() {
	if g.detached {
		return
	}
	g.detached = true
	g.task.Cancel()
	g.offTarget()
	if g.offMove != nil {
		g.offMove()
	}
}

func (g *GoTo) next() {
	if g.detached {
		return
	}
	a := g.actor
	if a.Moving() {
		g.offMove = a.moveComplete.Once(func(MoveResult) { g.offMove = nil; g.next() })
		return
	}
	if g.arrived() {
		a.log.Debug("arrived", zap.String("target", g.target.UID))
		a.StopGoTo(g)
		return
	}
	if len(g.path) == 0 || g.targetMoved {
		g.targetMoved = false
		if !g.plan() {
			a.log.Debug("no path", zap.String("target", g.target.UID))
			a.StopGoTo(g)
			return
		}
	}

	x, y := a.pos.Cell()
	dx, dy := g.path[0].X-x, g.path[0].Y-y
	dest, ok := a.TryMove(dx, dy)
	if !ok || !a.StartMove(dest) {
		g.blocked()
		return
	}
	g.retries = 0
	g.path = g.path[1:]
	g.offMove = a.moveComplete.Once(func(MoveResult) { g.offMove = nil; g.next() })
}

func (g *GoTo) blocked() {
	limit, delay := g.actor.env.Config.GetGoToRetry()
	g.retries++
	if g.retries > limit {
		g.actor.log.Debug("gave up", zap.String("target", g.target.UID))
		g.actor.StopGoTo(g)
		return
	}
	g.path = nil
	g.task = g.actor.env.Clock.Delay(delay, g.next)
}

// arrived reports whether the actor stands beside or on top of the target.
func (g *GoTo) arrived() bool {
	return geometry.Distance(g.actor.pos, g.target.pos) <= 1
}

func (g *GoTo) plan() bool {
	tx, ty := g.target.pos.Cell()
	var goals []world.Cell
	for _, f := range geometry.Facings {
		dx, dy := f.Step()
		if _, ok := g.actor.env.World.WalkableHeightAt(tx+dx, ty+dy); ok {
			goals = append(goals, world.Cell{X: tx + dx, Y: ty + dy})
		}
	}
	path, ok := g.actor.env.World.FindPath(g.actor.pos, goals, g.actor.env.Config.GetGoToSearchNodes())
	if !ok || len(path) == 0 {
		return false
	}
	g.path = path
	return true
}
