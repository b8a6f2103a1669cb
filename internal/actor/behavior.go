package actor

import "go.uber.org/zap"

// BehaviorKind names an autonomous behavior.
type BehaviorKind int

const (
	KindWander BehaviorKind = iota
	KindGoTo
)

func (k BehaviorKind) String() string {
	switch k {
	case KindWander:
		return "wander"
	case KindGoTo:
		return "goto"
	default:
		return "unknown"
	}
}

// Behavior issues movement intents for one actor until detached. After Detach
// returns, none of its pending callbacks may act.
type Behavior interface {
	Kind() BehaviorKind
	Detach()
}

// Slot holds the behaviors driving an actor. Attaching always releases what
// was there, so at most one behavior drives movement at a time.
type Slot struct {
	behaviors []Behavior
}

// Attach detaches every current behavior and installs b.
func (s *Slot) Attach(b Behavior) {
	s.DetachAll()
	s.behaviors = append(s.behaviors, b)
}

// DetachAll detaches and releases every behavior.
func (s *Slot) DetachAll() {
	for _, b := range s.behaviors {
		b.Detach()
	}
	s.behaviors = nil
}

// Release detaches b and empties the slot if b is in it.
func (s *Slot) Release(b Behavior) bool {
	b.Detach()
	for _, have := range s.behaviors {
		if have == b {
			s.DetachAll()
			return true
		}
	}
	return false
}

func (s *Slot) Len() int { return len(s.behaviors) }

func (s *Slot) Empty() bool { return len(s.behaviors) == 0 }

// Behaviors returns a copy of the slot's contents.
func (s *Slot) Behaviors() []Behavior {
	return append([]Behavior(nil), s.behaviors...)
}

// Active returns the attached behavior, if any.
func (s *Slot) Active() (Behavior, bool) {
	if len(s.behaviors) == 0 {
		return nil, false
	}
	return s.behaviors[len(s.behaviors)-1], true
}

func (a *Actor) attach(b Behavior) {
	a.slot.Attach(b)
	a.log.Debug("behavior attached", zap.Stringer("kind", b.Kind()))
}
