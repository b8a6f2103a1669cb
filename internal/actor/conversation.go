package actor

import (
	"go.uber.org/zap"

	"dzone/internal/geometry"
	"dzone/internal/mathutil"
)

// Message is a chat line heard in the town.
type Message struct {
	Channel string
	From    *Actor
	Text    string
}

// OnMessage reacts to a line said by someone else on the actor's channel by
// walking over to them. The reaction waits a random number of ticks so
// listeners do not all path on the same tick, and waits for a running move to
// finish before taking over from the current behavior. Lines that fail the
// channel, sender or presence checks are dropped.
func (a *Actor) OnMessage(msg Message) {
	if msg.From == nil || msg.From == a || msg.Channel != a.lastChannel || a.presence != Online {
		return
	}
	from := msg.From
	delay := mathutil.RandomIntRange(a.env.Rand.Intn, 0, a.env.Config.GetReactJitter())
	a.env.Clock.Delay(delay, func() {
		if geometry.Distance(a.pos, from.pos) < a.env.Config.GetNearbyDistance() {
			return
		}
		ready := func() {
			if a.presence != Online {
				return
			}
			a.log.Debug("approaching speaker", zap.String("target", from.UID))
			a.attach(newGoTo(a, from))
		}
		if a.move != nil {
			a.moveComplete.Once(func(MoveResult) { ready() })
			return
		}
		ready()
	})
}

// StartTalking shows msg above the actor on channel. When the text has
// scrolled and been held, the nametag returns, done-talking fires and onStop is
// called exactly once. Starting a new speech ends the current one first.
func (a *Actor) StartTalking(msg, channel string, onStop func()) {
	if a.stopTalking != nil {
		a.stopTalking()
	}
	a.talking = true
	a.lastChannel = channel
	a.nametag.Hidden = true

	box := &TextBox{Text: msg, Anchor: a.preciseScreen}
	a.messageBox = box

	finished := false
	stop := func() {
		if finished {
			return
		}
		finished = true
		box.Stop()
		a.stopTalking = nil
		a.messageBox = nil
		a.talking = false
		a.nametag.Hidden = false
		a.updateSprite()
		a.doneTalking.Emit(struct{}{})
		if onStop != nil {
			onStop()
		}
	}
	a.stopTalking = stop
	a.updateSprite()
	box.Scroll(a.env.Clock, a.env.Config.GetScrollTicksPerChar(), a.env.Config.GetHoldTicks(), stop)
}

// JoinChannel makes the actor listen on channel without saying anything.
func (a *Actor) JoinChannel(channel string) {
	a.lastChannel = channel
}
