// Package game runs a town inside an ebiten window.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"dzone/internal/config"
	"dzone/internal/monitoring"
	"dzone/internal/render"
	"dzone/internal/town"
)

// TownGame implements ebiten.Game for one town.
type TownGame struct {
	config   *config.Config
	town     *town.Town
	renderer *render.Renderer
	monitor  *monitoring.TickMonitor
	log      *zap.Logger

	camera    Camera
	showStats bool
	loop      *GameLoop

	lastAlertLog time.Time
}

func NewTownGame(cfg *config.Config, t *town.Town, r *render.Renderer, m *monitoring.TickMonitor, log *zap.Logger) *TownGame {
	if m == nil {
		m = monitoring.NewTickMonitor()
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &TownGame{
		config:    cfg,
		town:      t,
		renderer:  r,
		monitor:   m,
		log:       log,
		showStats: cfg.Display.ShowStats,
	}
	w, h := g.viewSize()
	g.camera.CenterOn(GridCenter(t.Grid().Width, t.Grid().Height), w, h)
	g.loop = NewGameLoop(g)
	return g
}

func (g *TownGame) Update() error {
	return g.loop.Update()
}

func (g *TownGame) Draw(screen *ebiten.Image) {
	g.loop.Draw(screen)
}

func (g *TownGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.loop.Layout(outsideWidth, outsideHeight)
}

// viewSize is the logical screen size: the window divided by the pixel scale.
func (g *TownGame) viewSize() (int, int) {
	scale := max(g.config.Display.Scale, 1)
	return g.config.GetScreenWidth() / scale, g.config.GetScreenHeight() / scale
}
