package actor

import "go.uber.org/zap"

// UpdatePresence applies a presence change. Going idle or offline releases
// every behavior; coming online with nothing attached starts wandering;
// coming online with a behavior attached keeps it. The sprite always follows.
func (a *Actor) UpdatePresence(p Presence) {
	switch p {
	case Online, Idle, Offline:
	default:
		p = Offline
	}
	if p != a.presence {
		a.log.Debug("presence", zap.String("from", string(a.presence)), zap.String("to", string(p)))
	}
	a.presence = p

	switch {
	case p == Offline || p == Idle:
		if !a.slot.Empty() {
			a.slot.DetachAll()
			a.log.Debug("behaviors released")
		}
	case a.slot.Empty():
		a.attach(newWander(a))
	}
	a.updateSprite()
}

// StopGoTo ends an approach and falls back to whatever the current presence
// calls for.
func (a *Actor) StopGoTo(g *GoTo) {
	a.slot.Release(g)
	a.UpdatePresence(a.presence)
}
