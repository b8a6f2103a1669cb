package actor

import (
	"dzone/internal/clock"
	"dzone/internal/geometry"
	"dzone/internal/mathutil"
)

// Wander hops in a random direction every so often. It pauses while the actor
// talks and steps aside at once when something asks to get off.
type Wander struct {
	actor    *Actor
	detached bool
	task     *clock.Task
	offNudge func()
	offMove  func()
}

func newWander(a *Actor) *Wander {
	w := &Wander{actor: a}
	w.offNudge = a.getOffMe.On(func(struct{}) { w.nudged() })
	w.wait()
	return w
}

func (w *Wander) Kind() BehaviorKind { return KindWander }

func (w *Wander) Detach() {
	if w.detached {
		return
	}
	w.detached = true
	w.task.Cancel()
	w.offNudge()
	if w.offMove != nil {
		w.offMove()
	}
}

func (w *Wander) wait() {
	lo, hi := w.actor.env.Config.GetWanderDelay()
	w.task = w.actor.env.Clock.Delay(mathutil.RandomIntRange(w.actor.env.Rand.Intn, lo, hi), w.wake)
}

func (w *Wander) wake() {
	if w.detached {
		return
	}
	if w.actor.talking || w.actor.Moving() {
		w.wait()
		return
	}
	f := geometry.Facings[w.actor.env.Rand.Intn(len(geometry.Facings))]
	if !w.step(f) {
		w.wait()
	}
}

func (w *Wander) nudged() {
	if w.detached || w.actor.Moving() {
		return
	}
	w.task.Cancel()
	for _, i := range w.actor.env.Rand.Perm(len(geometry.Facings)) {
		if w.step(geometry.Facings[i]) {
			return
		}
	}
	w.wait()
}

func (w *Wander) step(f geometry.Facing) bool {
	dx, dy := f.Step()
	dest, ok := w.actor.TryMove(dx, dy)
	if !ok || !w.actor.StartMove(dest) {
		return false
	}
	w.offMove = w.actor.moveComplete.Once(func(MoveResult) {
		w.offMove = nil
		if !w.detached {
			w.wait()
		}
	})
	return true
}
