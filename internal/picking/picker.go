package picking

import "dzone/internal/geometry"

// Candidate is one pickable object as seen this tick.
type Candidate[T comparable] struct {
	ID    T
	Depth float64 // draw-order key
	Z     float64
	Box   BoundingBox
}

// Picker tracks the object under the mouse. Candidates are offered once per
// tick after their geometry has settled.
type Picker[T comparable] struct {
	mouse  geometry.Point
	out    bool
	onUI   bool
	hover  Candidate[T]
	active bool
}

// Begin starts a tick. out means the mouse left the window; onUI means it is
// over an interface element. Both suppress picking.
func (p *Picker[T]) Begin(mouse geometry.Point, out, onUI bool) {
	p.mouse = mouse
	p.out = out
	p.onUI = onUI
	if out {
		p.active = false
	}
}

// Offer considers c for the hover slot. A closer or higher hovered object is
// never overridden by c.
func (p *Picker[T]) Offer(c Candidate[T]) {
	if p.active && p.hover.ID == c.ID {
		p.hover.Depth, p.hover.Z = c.Depth, c.Z
	}
	if p.out || p.onUI {
		return
	}
	if p.active && p.hover.ID != c.ID && (p.hover.Depth > c.Depth || p.hover.Z > c.Z) {
		return
	}
	if c.Box.Contains(p.mouse) {
		p.hover = c
		p.active = true
	} else if p.active && p.hover.ID == c.ID {
		p.active = false
	}
}

// Forget clears the hover slot if it holds id, used when an object leaves.
func (p *Picker[T]) Forget(id T) {
	if p.active && p.hover.ID == id {
		p.active = false
	}
}

// Hover returns the object under the mouse.
func (p *Picker[T]) Hover() (T, bool) {
	if !p.active {
		var zero T
		return zero, false
	}
	return p.hover.ID, true
}
