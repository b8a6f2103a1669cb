package town

import (
	"dzone/internal/actor"
	"dzone/internal/geometry"
	"dzone/internal/sheet"
)

// Drawable is what the renderer needs to draw one actor this tick.
type Drawable struct {
	UID     string
	Screen  geometry.Point
	Region  sheet.Region
	DrawKey float64
	Tint    string
	Nametag string // empty while hidden
	Message string // revealed part of the current speech
	Hover   bool
}

// Snapshot lists the actors in draw order.
func (t *Town) Snapshot() []Drawable {
	hover, _ := t.Hover()
	out := make([]Drawable, 0, t.draw.Len())
	t.draw.Each(func(key float64, s *actor.Sprite) {
		a := s.Owner
		d := Drawable{
			UID:     a.UID,
			Screen:  a.Screen(),
			Region:  s.Region,
			DrawKey: key,
			Tint:    s.Tint,
			Hover:   a == hover,
		}
		if tag := a.Nametag(); !tag.Hidden {
			d.Nametag = tag.Visible()
		}
		if box, ok := a.MessageBox(); ok {
			d.Message = box.Visible()
		}
		out = append(out, d)
	})
	return out
}
