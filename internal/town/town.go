// Package town is the scene: it owns the actors, applies transport events at
// tick boundaries and advances everything one tick at a time.
package town

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"dzone/internal/actor"
	"dzone/internal/clock"
	"dzone/internal/config"
	"dzone/internal/geometry"
	"dzone/internal/picking"
	"dzone/internal/sheet"
	"dzone/internal/transport"
	"dzone/internal/world"
	"dzone/internal/zbuffer"
)

// Options configure a town. Grid and Config are required.
type Options struct {
	Config *config.Config
	Grid   *world.Grid
	Sheet  *sheet.Sheet
	Feed   *transport.Feed
	Log    *zap.Logger
	Rand   *rand.Rand
	// Spawns are preferred starting cells; any open cell is used when empty.
	Spawns []world.Cell
}

type Town struct {
	env    *actor.Env
	grid   *world.Grid
	draw   *zbuffer.Buffer[*actor.Sprite]
	feed   *transport.Feed
	log    *zap.Logger
	spawns []world.Cell

	actors map[string]*actor.Actor
	order  []*actor.Actor
	speech map[string]*speechQueue
	picker picking.Picker[*actor.Actor]
}

func New(opts Options) *Town {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Config.World.Seed))
	}
	if opts.Sheet == nil {
		opts.Sheet = sheet.Default()
	}
	draw := zbuffer.New[*actor.Sprite]()
	return &Town{
		env: &actor.Env{
			Clock:     clock.New(),
			World:     opts.Grid,
			DrawOrder: draw,
			Sheet:     opts.Sheet,
			Config:    opts.Config,
			Rand:      opts.Rand,
			Log:       opts.Log,
		},
		grid:   opts.Grid,
		draw:   draw,
		feed:   opts.Feed,
		log:    opts.Log,
		spawns: opts.Spawns,
		actors: make(map[string]*actor.Actor),
		speech: make(map[string]*speechQueue),
	}
}

// Env exposes the services shared by the town's actors.
func (t *Town) Env() *actor.Env { return t.env }

func (t *Town) Grid() *world.Grid { return t.grid }

func (t *Town) Ticks() uint64 { return t.env.Clock.Ticks() }

// Actor looks up an actor by user id.
func (t *Town) Actor(uid string) (*actor.Actor, bool) {
	a, ok := t.actors[uid]
	return a, ok
}

// Actors returns every actor in join order.
func (t *Town) Actors() []*actor.Actor {
	return append([]*actor.Actor(nil), t.order...)
}

// Join adds a user to the town, or refreshes the name and color of one already
// present. New actors start offline on a free spawn cell.
func (t *Town) Join(uid, username, roleColor string) (*actor.Actor, error) {
	if a, ok := t.actors[uid]; ok {
		if username != "" {
			a.Username = username
			a.Nametag().Text = username
			a.Nametag().Reveal()
		}
		if roleColor != "" {
			a.RoleColor = roleColor
		}
		return a, nil
	}
	if username == "" {
		username = uid
	}
	pos, ok := t.spawnPoint()
	if !ok {
		return nil, fmt.Errorf("no free cell to place %s", uid)
	}
	a := actor.New(t.env, actor.Options{
		UID:       uid,
		Username:  username,
		RoleColor: roleColor,
		Position:  pos,
		Facing:    geometry.Facings[t.env.Rand.Intn(len(geometry.Facings))],
	})
	t.actors[uid] = a
	t.order = append(t.order, a)
	t.log.Info("actor joined", zap.String("uid", uid), zap.String("username", username), zap.Any("position", pos))
	return a, nil
}

// Populate joins the configured residents and applies their presence.
func (t *Town) Populate(residents []config.ResidentConfig) error {
	for _, r := range residents {
		a, err := t.Join(r.UID, r.Username, r.RoleColor)
		if err != nil {
			return err
		}
		a.UpdatePresence(actor.NormalizePresence(r.Presence))
	}
	return nil
}

func (t *Town) spawnPoint() (geometry.Position, bool) {
	var free []world.Cell
	for _, c := range t.spawns {
		if _, ok := t.grid.WalkableHeightAt(c.X, c.Y); ok && len(t.grid.ObjectsAt(c.X, c.Y)) == 0 {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		free = t.grid.OpenCells()
	}
	if len(free) == 0 {
		return geometry.Position{}, false
	}
	c := free[t.env.Rand.Intn(len(free))]
	h, _ := t.grid.WalkableHeightAt(c.X, c.Y)
	return geometry.Position{X: float64(c.X), Y: float64(c.Y), Z: h}, true
}

// SetPresence applies a presence report, joining unknown users first.
func (t *Town) SetPresence(uid, presence string) error {
	a, err := t.Join(uid, "", "")
	if err != nil {
		return err
	}
	a.UpdatePresence(actor.NormalizePresence(presence))
	return nil
}

// Apply routes one transport event.
func (t *Town) Apply(ev transport.Event) error {
	switch ev.Kind {
	case transport.KindJoin:
		a, err := t.Join(ev.UID, ev.Username, ev.RoleColor)
		if err != nil {
			return err
		}
		if ev.Channel != "" {
			a.JoinChannel(ev.Channel)
		}
		if ev.Presence != "" {
			a.UpdatePresence(actor.NormalizePresence(ev.Presence))
		}
		return nil
	case transport.KindPresence:
		return t.SetPresence(ev.UID, ev.Presence)
	case transport.KindMessage:
		return t.Say(ev.UID, ev.Channel, ev.Text)
	}
	return fmt.Errorf("unknown event type %q", ev.Kind)
}

// Input is the pointer state sampled for a tick.
type Input struct {
	Mouse    geometry.Point // in town screen space, camera already removed
	MouseOut bool
	OnUI     bool
}

// Tick applies buffered events, advances the clock so every move settles,
// then lets each actor update and offer itself for picking.
func (t *Town) Tick(in Input) {
	if t.feed != nil {
		for _, ev := range t.feed.Drain() {
			if err := t.Apply(ev); err != nil {
				t.log.Warn("event dropped", zap.String("type", string(ev.Kind)), zap.String("uid", ev.UID), zap.Error(err))
			}
		}
	}

	t.env.Clock.Advance()

	t.picker.Begin(in.Mouse, in.MouseOut, in.OnUI)
	for _, a := range t.order {
		a.OnUpdate(&t.picker)
	}
}

// Hover returns the actor under the mouse.
func (t *Town) Hover() (*actor.Actor, bool) {
	return t.picker.Hover()
}
