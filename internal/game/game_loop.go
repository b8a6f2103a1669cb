package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const alertLogInterval = 3 * time.Second

// GameLoop manages the town update and render cycle
type GameLoop struct {
	game  *TownGame
	input *InputHandler
	ui    *UISystem
}

func NewGameLoop(game *TownGame) *GameLoop {
	return &GameLoop{
		game:  game,
		input: NewInputHandler(game),
		ui:    NewUISystem(game),
	}
}

// Update advances the town one tick.
func (gl *GameLoop) Update() error {
	timer := gl.game.monitor.StartTick()
	in := gl.input.HandleInput()
	in.OnUI = gl.ui.Contains(gl.input.cursorX, gl.input.cursorY)
	gl.game.town.Tick(in)
	timer.EndTick()

	gl.game.monitor.SetActors(len(gl.game.town.Actors()))
	gl.logAlerts()
	return nil
}

// logAlerts reports slow ticks, at most once per alertLogInterval.
func (gl *GameLoop) logAlerts() {
	budget := time.Second / time.Duration(gl.game.config.GetTPS())
	alerts := gl.game.monitor.CheckAlerts(budget)
	if len(alerts) == 0 {
		return
	}
	now := time.Now()
	if now.Sub(gl.game.lastAlertLog) < alertLogInterval {
		return
	}
	gl.game.lastAlertLog = now
	for _, a := range alerts {
		gl.game.log.Warn(a.Message,
			zap.String("type", a.Type),
			zap.Float64("value_ms", a.Value),
			zap.Float64("budget_ms", a.Threshold),
		)
	}
}

func (gl *GameLoop) Draw(screen *ebiten.Image) {
	gl.game.monitor.ProfiledDraw(func() {
		gl.game.renderer.Draw(screen, gl.game.camera.Origin(), gl.game.town.Grid(), gl.game.town.Snapshot())
	})
	gl.ui.Draw(screen)
}

// Layout returns the logical screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.viewSize()
}
