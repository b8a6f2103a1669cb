package actor

import (
	"testing"

	"dzone/internal/geometry"
	"dzone/internal/world"
)

// listeners builds an online listener at (1,1) and a speaker further east on an
// open grid.
func listeners(t *testing.T, speakerX float64) (*Env, *Actor, *Actor) {
	t.Helper()
	env, _ := newTestEnv(world.NewGrid(16, 8))
	listener := New(env, Options{UID: "listener", Position: geometry.Position{X: 1, Y: 1}})
	speaker := New(env, Options{UID: "speaker", Position: geometry.Position{X: speakerX, Y: 1}})
	listener.UpdatePresence(Online)
	listener.JoinChannel("general")
	return env, listener, speaker
}

func activeGoTo(a *Actor) (*GoTo, bool) {
	bs := a.Behaviors()
	if len(bs) != 1 {
		return nil, false
	}
	g, ok := bs[0].(*GoTo)
	return g, ok
}

func TestMessageStartsApproach(t *testing.T) {
	env, listener, speaker := listeners(t, 8)
	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "hello"})

	if _, ok := activeGoTo(listener); ok {
		t.Fatal("reaction should wait for the jitter delay")
	}
	advance(env, env.Config.GetReactJitter()+1)

	g, ok := activeGoTo(listener)
	if !ok {
		t.Fatalf("behaviors = %v, want exactly one goto", listener.Behaviors())
	}
	if g.Target() != speaker {
		t.Errorf("goto targets %s", g.Target().UID)
	}
}

func TestMessageFiltering(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		self    bool
		status  Presence
		speakX  float64
	}{
		{name: "other channel", channel: "random", status: Online, speakX: 8},
		{name: "own message", channel: "general", self: true, status: Online, speakX: 8},
		{name: "idle listener", channel: "general", status: Idle, speakX: 8},
		{name: "offline listener", channel: "general", status: Offline, speakX: 8},
		{name: "already nearby", channel: "general", status: Online, speakX: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, listener, speaker := listeners(t, tt.speakX)
			listener.UpdatePresence(tt.status)
			before := listener.Behaviors()

			from := speaker
			if tt.self {
				from = listener
			}
			listener.OnMessage(Message{Channel: tt.channel, From: from, Text: "hi"})
			advance(env, env.Config.GetReactJitter()+5)

			after := listener.Behaviors()
			if len(after) != len(before) {
				t.Fatalf("behaviors changed from %v to %v", before, after)
			}
			for i := range after {
				if after[i] != before[i] {
					t.Errorf("behavior %d replaced", i)
				}
			}
		})
	}
}

func TestMessageWaitsForMoveToFinish(t *testing.T) {
	env, listener, speaker := listeners(t, 8)
	env.Config.Conversation.ReactJitterTicks = -1 // react on the next tick

	listener.StartMove(geometry.Position{X: 1, Y: 2})
	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "over here"})
	advance(env, 2)
	if _, ok := activeGoTo(listener); ok {
		t.Fatal("goto attached while a move was still running")
	}

	advance(env, moveTicks(env))
	if _, ok := activeGoTo(listener); !ok {
		t.Fatalf("behaviors = %v, want goto after the move completed", listener.Behaviors())
	}
}

func TestPresenceChangeBeforeReaction(t *testing.T) {
	env, listener, speaker := listeners(t, 8)
	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "hey"})
	listener.UpdatePresence(Offline)
	advance(env, env.Config.GetReactJitter()+1)
	if !listener.slot.Empty() {
		t.Errorf("offline listener picked up %v", listener.Behaviors())
	}
}

func TestGoToArrives(t *testing.T) {
	env, listener, speaker := listeners(t, 7)
	env.Config.Conversation.ReactJitterTicks = -1
	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "come"})

	for i := 0; i < 2000; i++ {
		env.Clock.Advance()
		if _, ok := activeGoTo(listener); !ok && i > 2 {
			break
		}
	}
	if d := geometry.Distance(listener.Position(), speaker.Position()); d > 1 {
		t.Errorf("listener stopped %.1f cells away at %v", d, listener.Position())
	}
	bs := listener.Behaviors()
	if len(bs) != 1 || bs[0].Kind() != KindWander {
		t.Errorf("after arriving behaviors = %v, want wander", bs)
	}
	t.Logf("arrived at %v after %d ticks", listener.Position(), env.Clock.Ticks())
}

func TestGoToFollowsMovingTarget(t *testing.T) {
	env, listener, speaker := listeners(t, 7)
	env.Config.Conversation.ReactJitterTicks = -1
	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "come"})
	advance(env, 3)

	// The speaker walks further away while being approached.
	speaker.StartMove(geometry.Position{X: 7, Y: 2})
	advance(env, moveTicks(env))
	speaker.StartMove(geometry.Position{X: 8, Y: 2})

	for i := 0; i < 3000; i++ {
		env.Clock.Advance()
		if _, ok := activeGoTo(listener); !ok {
			break
		}
	}
	if d := geometry.Distance(listener.Position(), speaker.Position()); d > 1 {
		t.Errorf("listener ended %.1f cells from the speaker (%v vs %v)", d, listener.Position(), speaker.Position())
	}
}

func TestGoToGivesUpWithoutPath(t *testing.T) {
	g := world.NewGrid(16, 8)
	for y := 0; y < 8; y++ {
		g.SetTerrain(4, y, world.Terrain{Kind: world.TerrainWater})
	}
	env, _ := newTestEnv(g)
	env.Config.Conversation.ReactJitterTicks = -1
	listener := New(env, Options{UID: "listener", Position: geometry.Position{X: 1, Y: 1}})
	speaker := New(env, Options{UID: "speaker", Position: geometry.Position{X: 8, Y: 1}})
	listener.UpdatePresence(Online)
	listener.JoinChannel("general")

	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "across the river"})
	advance(env, 5)

	bs := listener.Behaviors()
	if len(bs) != 1 || bs[0].Kind() != KindWander {
		t.Errorf("behaviors = %v, want a fallback to wander", bs)
	}
	if listener.Position() != (geometry.Position{X: 1, Y: 1}) {
		t.Errorf("listener moved to %v", listener.Position())
	}
}

func TestDetachedGoToIssuesNoMoves(t *testing.T) {
	env, listener, speaker := listeners(t, 10)
	env.Config.Conversation.ReactJitterTicks = -1
	listener.OnMessage(Message{Channel: "general", From: speaker, Text: "come"})
	advance(env, 3)
	if !listener.Moving() {
		t.Fatal("goto should have started moving")
	}

	listener.UpdatePresence(Idle)
	advance(env, moveTicks(env))
	settled := listener.Position()
	advance(env, 600)
	if listener.Position() != settled || listener.Moving() {
		t.Errorf("detached goto kept moving: %v -> %v", settled, listener.Position())
	}
}

func TestStartTalking(t *testing.T) {
	env, _ := newTestEnv(newMockWorld())
	env.Config.Conversation.ScrollTicksPerChar = 2
	env.Config.Conversation.HoldTicks = 10
	a := New(env, Options{UID: "a", Username: "ada", Position: geometry.Position{X: 1, Y: 1}})

	stops, done := 0, 0
	a.OnDoneTalking(func() { done++ })
	a.StartTalking("héllo", "general", func() { stops++ })

	if !a.Talking() || !a.Nametag().Hidden || a.LastChannel() != "general" {
		t.Fatal("talking state not set")
	}
	box, ok := a.MessageBox()
	if !ok {
		t.Fatal("message box missing")
	}
	advance(env, 4)
	if got := box.Visible(); got != "hé" {
		t.Errorf("visible after 4 ticks = %q, want %q", got, "hé")
	}
	advance(env, 6)
	if got := box.Visible(); got != "héllo" {
		t.Errorf("visible after scroll = %q", got)
	}
	if !a.Talking() {
		t.Error("message should be held before talking ends")
	}

	advance(env, 10)
	if a.Talking() || a.Nametag().Hidden {
		t.Error("talking should end after the hold")
	}
	if _, ok := a.MessageBox(); ok {
		t.Error("message box should be gone")
	}
	advance(env, 50)
	if stops != 1 || done != 1 {
		t.Errorf("onStop called %d times, done-talking %d times; want 1 each", stops, done)
	}
}

func TestStartTalkingInterruptsPreviousSpeech(t *testing.T) {
	env, _ := newTestEnv(newMockWorld())
	a := New(env, Options{UID: "a", Position: geometry.Position{X: 1, Y: 1}})
	var order []string
	a.StartTalking("first", "general", func() { order = append(order, "first") })
	advance(env, 3)
	a.StartTalking("second", "offtopic", func() { order = append(order, "second") })
	advance(env, 1000)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("stop order = %v", order)
	}
	if a.LastChannel() != "offtopic" {
		t.Errorf("channel = %q", a.LastChannel())
	}
}
