package actor

import (
	"math"

	"go.uber.org/zap"

	"dzone/internal/clock"
	"dzone/internal/geometry"
	"dzone/internal/world"
)

// MaxStep is the largest height difference a single hop can cover.
const MaxStep = world.MaxStep

// moveState lives from an accepted StartMove until its commit.
type moveState struct {
	seq       uint64
	delta     geometry.Position
	frame     int
	frames    int
	perFrame  int
	task      *clock.Task
	committed bool
}

// TryMove turns the actor toward a unit step and reports where the step would
// land. It refuses when something stands on the actor's head, which is asked to
// get off, or when the target surface is more than MaxStep away vertically.
// Exactly one of dx, dy must be non-zero.
func (a *Actor) TryMove(dx, dy int) (geometry.Position, bool) {
	if (dx == 0) == (dy == 0) || dx*dx+dy*dy != 1 {
		return geometry.Position{}, false
	}
	a.facing = geometry.FacingOf(float64(dx), float64(dy))
	a.updateSprite()

	x, y := a.pos.Cell()
	if above, ok := a.env.World.ObjectAt(x, y, a.pos.Z+a.Height()); ok {
		if n, ok := above.(interface{ GetOffMe() }); ok {
			n.GetOffMe()
		}
		return geometry.Position{}, false
	}

	h, ok := a.env.World.WalkableHeightAt(x+dx, y+dy)
	if !ok || math.Abs(a.pos.Z-h) > MaxStep {
		return geometry.Position{}, false
	}
	return geometry.Position{X: float64(x + dx), Y: float64(y + dy), Z: h}, true
}

// StartMove begins the hop animation toward dest, which the caller has already
// validated. It returns false if a move is already running.
func (a *Actor) StartMove(dest geometry.Position) bool {
	if a.move != nil {
		a.log.Debug("start move ignored, already moving", zap.Any("dest", dest))
		return false
	}
	cfg := a.env.Config
	a.moves++
	m := &moveState{
		seq:      a.moves,
		delta:    dest.Sub(a.pos),
		frames:   a.env.Sheet.Animation.Frames,
		perFrame: cfg.GetFramesPerStep(),
	}
	a.dest = dest
	a.move = m
	a.unWalkable = true
	a.facing = geometry.FacingOf(m.delta.X, m.delta.Y)

	dx, dy := dest.Cell()
	a.env.World.Reserve(a, dx, dy)

	a.updateSprite()
	m.task = a.env.Clock.Repeat(m.perFrame*m.frames, func(p clock.Progress) {
		a.stepMove(m, p)
	})
	return true
}

// stepMove runs once per tick of a move.
func (a *Actor) stepMove(m *moveState, p clock.Progress) {
	if m.committed || a.move != m {
		return
	}
	newFrame := false
	if p.Ticks%m.perFrame == 0 {
		m.frame++
		newFrame = true
	}

	cfg := a.env.Config
	switch {
	case m.frame >= m.frames || p.Last():
		a.commitMove(m)
		return
	case newFrame && m.frame == cfg.GetHalfwayFrame() && (a.facing == geometry.South || a.facing == geometry.East):
		if a.env.OnHalfway != nil {
			a.env.OnHalfway(a)
		}
	case newFrame && m.frame == cfg.GetDrawOrderFrame():
		key := a.dest.DrawKey()
		a.env.DrawOrder.UpdateDrawOrder(a.zDepth, &a.sprite, key)
		a.zDepth = key
	}

	a.preciseScreen = geometry.Project(a.screen, a.pos, a.dest, true, p.Fraction())
	a.placeNametag()
	a.updateSprite()
}

func (a *Actor) commitMove(m *moveState) {
	m.committed = true
	m.task.Cancel()

	from, dest := a.pos, a.dest
	a.env.World.Release(a)
	a.move = nil
	a.unWalkable = false
	a.Move(dest, true)
	a.updateSprite()

	a.log.Debug("move complete", zap.Any("from", from), zap.Any("to", dest))
	a.moveComplete.Emit(MoveResult{From: from, To: dest, Seq: m.seq})
}

// Move relocates the actor at once, either by a delta or to an absolute
// position. Moving nowhere is a no-op. The world index, screen anchor and draw
// order all follow in the same step.
func (a *Actor) Move(p geometry.Position, absolute bool) {
	target := p
	if !absolute {
		target = a.pos.Add(p)
	}
	if target == a.pos {
		return
	}
	a.env.World.MoveObject(a, target)
	a.pos = target
	a.screen = geometry.Anchor(target)
	a.preciseScreen = a.screen
	a.placeNametag()

	key := target.DrawKey()
	a.env.DrawOrder.UpdateDrawOrder(a.zDepth, &a.sprite, key)
	a.zDepth = key
}
