// Package actor animates and steers the residents of a town.
//
// An actor moves one cell at a time in a hop animation driven by the tick
// clock, picks its sprite from presence and motion, and hands control of its
// movement to at most one attached behavior (Wander or GoTo).
package actor

import (
	"strings"

	"go.uber.org/zap"

	"dzone/internal/geometry"
	"dzone/internal/picking"
	"dzone/internal/sheet"
)

// Presence is an actor's availability as reported by the transport.
type Presence string

const (
	Online  Presence = "online"
	Idle    Presence = "idle"
	Offline Presence = "offline"
)

// NormalizePresence maps a reported value onto a known presence. Unknown or
// empty values are offline.
func NormalizePresence(s string) Presence {
	switch p := Presence(strings.ToLower(strings.TrimSpace(s))); p {
	case Online, Idle, Offline:
		return p
	}
	return Offline
}

// Height is how far an actor raises the surface for anyone standing on it.
const Height = 0.5

// Options seed a new actor.
type Options struct {
	UID       string
	Username  string
	RoleColor string
	Position  geometry.Position
	Facing    geometry.Facing
}

// MoveResult is delivered once per completed move.
type MoveResult struct {
	From geometry.Position
	To   geometry.Position
	Seq  uint64
}

type Actor struct {
	UID       string
	Username  string
	RoleColor string

	env *Env
	log *zap.Logger

	pos      geometry.Position
	facing   geometry.Facing
	presence Presence
	talking  bool

	// dest is meaningful only while move is non-nil
	dest       geometry.Position
	move       *moveState
	moves      uint64
	unWalkable bool

	screen        geometry.Point
	preciseScreen geometry.Point
	zDepth        float64
	sprite        Sprite

	nametag     TextBox
	messageBox  *TextBox
	lastChannel string
	stopTalking func()

	slot Slot

	moveComplete Signal[MoveResult]
	doneTalking  Signal[struct{}]
	getOffMe     Signal[struct{}]
}

// New creates an offline actor and places it in the world and draw order.
func New(env *Env, opts Options) *Actor {
	env.withDefaults()
	a := &Actor{
		UID:       opts.UID,
		Username:  opts.Username,
		RoleColor: opts.RoleColor,
		env:       env,
		log:       env.Log.With(zap.String("uid", opts.UID)),
		pos:       opts.Position,
		facing:    opts.Facing,
		presence:  Offline,
		nametag:   TextBox{Text: opts.Username},
	}
	a.sprite.Owner = a
	a.nametag.Reveal()

	if env.World != nil {
		env.World.MoveObject(a, a.pos)
	}
	a.screen = geometry.Anchor(a.pos)
	a.preciseScreen = a.screen
	a.zDepth = a.pos.DrawKey()
	env.DrawOrder.UpdateDrawOrder(a.zDepth, &a.sprite, a.zDepth)
	a.placeNametag()
	a.updateSprite()
	return a
}

// Height implements world.Object.
func (a *Actor) Height() float64 { return Height }

// Walkable implements world.Object. A moving actor cannot be landed on.
func (a *Actor) Walkable() bool { return !a.unWalkable }

func (a *Actor) Position() geometry.Position { return a.pos }
func (a *Actor) Facing() geometry.Facing     { return a.facing }
func (a *Actor) Presence() Presence          { return a.presence }
func (a *Actor) Talking() bool               { return a.talking }
func (a *Actor) UnWalkable() bool            { return a.unWalkable }
func (a *Actor) LastChannel() string         { return a.lastChannel }

// Destination returns the target of the move in progress.
func (a *Actor) Destination() (geometry.Position, bool) {
	if a.move == nil {
		return geometry.Position{}, false
	}
	return a.dest, true
}

// Moving reports whether a move is in progress.
func (a *Actor) Moving() bool { return a.move != nil }

// Frame returns the current hop frame, zero when standing still.
func (a *Actor) Frame() int {
	if a.move == nil {
		return 0
	}
	return a.move.frame
}

// Screen is the interpolated screen anchor for this tick.
func (a *Actor) Screen() geometry.Point { return a.preciseScreen }

// DrawKey is the key the actor is filed under in the draw order.
func (a *Actor) DrawKey() float64 { return a.zDepth }

func (a *Actor) Sprite() *Sprite { return &a.sprite }

func (a *Actor) Nametag() *TextBox { return &a.nametag }

// MessageBox returns the speech overlay while talking.
func (a *Actor) MessageBox() (*TextBox, bool) {
	return a.messageBox, a.messageBox != nil
}

// Behaviors returns a copy of the attached behaviors.
func (a *Actor) Behaviors() []Behavior { return a.slot.Behaviors() }

// OnMoveComplete subscribes to move completion until cancel is called.
func (a *Actor) OnMoveComplete(fn func(MoveResult)) (cancel func()) {
	return a.moveComplete.On(fn)
}

// OnDoneTalking subscribes to the end of every speech.
func (a *Actor) OnDoneTalking(fn func()) (cancel func()) {
	return a.doneTalking.On(func(struct{}) { fn() })
}

// GetOffMe asks the actor to step off whatever it is standing on. Attached
// behaviors may ignore it.
func (a *Actor) GetOffMe() {
	a.getOffMe.Emit(struct{}{})
}

// OnUpdate runs once per tick after the clock has advanced, so geometry read
// here is settled for the tick.
func (a *Actor) OnUpdate(p *picking.Picker[*Actor]) {
	if a.talking {
		a.updateSprite()
	}
	if p != nil {
		p.Offer(a.Candidate())
	}
}

// Candidate is the actor's pick box, sized from the online north pose.
func (a *Actor) Candidate() picking.Candidate[*Actor] {
	r, _ := a.env.Sheet.Lookup(sheet.Online, geometry.North)
	return picking.Candidate[*Actor]{
		ID:    a,
		Depth: a.zDepth,
		Z:     a.pos.Z,
		Box:   picking.BoxAt(a.preciseScreen, r.OX, r.OY, r.W, r.H),
	}
}

func (a *Actor) placeNametag() {
	a.nametag.Anchor = a.preciseScreen
	if a.messageBox != nil {
		a.messageBox.Anchor = a.preciseScreen
	}
}
