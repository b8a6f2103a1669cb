package actor

import (
	"dzone/internal/geometry"
	"dzone/internal/sheet"
)

// Sprite is the actor's cached sprite description. Its address is the handle
// the draw order files the actor under.
type Sprite struct {
	Owner  *Actor
	Region sheet.Region
	// Tint names the role color sheet variant, empty for the plain sheet.
	Tint string
}

// FrameInput is everything frame selection depends on.
type FrameInput struct {
	Presence  Presence
	Facing    geometry.Facing
	Talking   bool
	Moving    bool
	Frame     int
	Climb     float64 // destination z minus current z
	Tick      uint64
	RoleColor string
}

// FrameTiming holds the animation constants frame selection uses.
type FrameTiming struct {
	TalkPhaseTicks int
	TalkPhases     int
	HopOffsetCap   int
}

// SelectFrame picks the sheet region for an actor. A move shows the hopping
// strip, talking shows the online pose cycling through its phases, anything
// else shows the static presence pose.
func SelectFrame(s *sheet.Sheet, timing FrameTiming, in FrameInput) (Sprite, bool) {
	state, facing := sheet.State(in.Presence), in.Facing
	switch {
	case in.Moving:
		state = sheet.Hopping
	case in.Talking:
		state = sheet.Online
		facing = facing.TalkingFacing()
	}

	r, ok := s.Lookup(state, facing)
	if !ok {
		if r, ok = s.Lookup(sheet.Offline, facing); !ok {
			return Sprite{}, false
		}
	}

	switch {
	case in.Moving:
		r.X += in.Frame * r.W
		if z := s.Animation.ZStartFrame; in.Frame >= z {
			lift := min(timing.HopOffsetCap, in.Frame-z)
			if in.Climb > 0 {
				r.OY -= lift
			} else if in.Climb < 0 {
				r.OY += lift
			}
		}
	case in.Talking && timing.TalkPhaseTicks > 0 && timing.TalkPhases > 0:
		phase := int(in.Tick/uint64(timing.TalkPhaseTicks)) % timing.TalkPhases
		r.Y += phase * r.H
	}

	return Sprite{Region: r, Tint: in.RoleColor}, true
}

func (a *Actor) frameTiming() FrameTiming {
	ticks, phases := a.env.Config.GetTalkPhase()
	return FrameTiming{
		TalkPhaseTicks: ticks,
		TalkPhases:     phases,
		HopOffsetCap:   a.env.Config.GetHopOffsetCap(),
	}
}

func (a *Actor) frameInput() FrameInput {
	in := FrameInput{
		Presence:  a.presence,
		Facing:    a.facing,
		Talking:   a.talking,
		Tick:      a.env.Clock.Ticks(),
		RoleColor: a.RoleColor,
	}
	if a.move != nil {
		in.Moving = true
		in.Frame = a.move.frame
		in.Climb = a.dest.Z - a.pos.Z
	}
	return in
}

// updateSprite refreshes the cached sprite description in place.
func (a *Actor) updateSprite() {
	s, ok := SelectFrame(a.env.Sheet, a.frameTiming(), a.frameInput())
	if !ok {
		return
	}
	a.sprite.Region = s.Region
	a.sprite.Tint = s.Tint
}
