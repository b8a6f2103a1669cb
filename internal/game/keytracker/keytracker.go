// Package keytracker reports keys that went down since the previous update.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Tracker remembers the previous state of each key it is asked about.
type Tracker struct {
	prev map[ebiten.Key]bool
}

func New() *Tracker {
	return &Tracker{prev: make(map[ebiten.Key]bool)}
}

// JustPressed is true on the first update key is held.
func (t *Tracker) JustPressed(key ebiten.Key) bool {
	return t.Step(key, ebiten.IsKeyPressed(key))
}

// Step records that key is now pressed or not and reports a fresh press.
func (t *Tracker) Step(key ebiten.Key, pressed bool) bool {
	just := pressed && !t.prev[key]
	t.prev[key] = pressed
	return just
}
