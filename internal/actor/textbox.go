package actor

import (
	"unicode/utf8"

	"dzone/internal/clock"
	"dzone/internal/geometry"
)

// TextBox is the state of a text overlay drawn above an actor: the nametag or
// a scrolling speech message. Drawing it is up to the renderer.
type TextBox struct {
	Text   string
	Anchor geometry.Point
	Hidden bool

	shown  int
	scroll *clock.Task
	hold   *clock.Task
}

// Reveal shows the whole text at once.
func (t *TextBox) Reveal() {
	t.shown = utf8.RuneCountInString(t.Text)
}

// Visible returns the part of the text revealed so far.
func (t *TextBox) Visible() string {
	if t.shown <= 0 {
		return ""
	}
	n := 0
	for i := range t.Text {
		if n == t.shown {
			return t.Text[:i]
		}
		n++
	}
	return t.Text
}

// Scroll reveals one rune every ticksPerChar ticks, holds the full text for
// hold ticks and then calls done.
func (t *TextBox) Scroll(c *clock.Clock, ticksPerChar, hold int, done func()) {
	t.Stop()
	t.shown = 0
	ticksPerChar = max(ticksPerChar, 1)
	runes := utf8.RuneCountInString(t.Text)

	finish := func() {
		t.shown = runes
		t.hold = c.Delay(hold, done)
	}
	if runes == 0 {
		finish()
		return
	}
	t.scroll = c.Repeat(runes*ticksPerChar, func(p clock.Progress) {
		t.shown = p.Ticks / ticksPerChar
		if p.Last() {
			finish()
		}
	})
}

// Stop cancels any scroll or hold in progress without calling done.
func (t *TextBox) Stop() {
	t.scroll.Cancel()
	t.hold.Cancel()
}
