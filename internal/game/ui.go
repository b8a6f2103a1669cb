package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dzone/internal/geometry"
	"dzone/internal/picking"
)

// UI dimension constants
const (
	statsPanelX      = 4
	statsPanelY      = 4
	statsPanelWidth  = 180
	statsPanelHeight = 84
	hoverPanelHeight = 36
)

var (
	UIColorPanel = color.RGBA{0, 0, 0, 160}
)

// UISystem draws the overlays on top of the town.
type UISystem struct {
	game *TownGame
}

func NewUISystem(game *TownGame) *UISystem {
	return &UISystem{game: game}
}

func (ui *UISystem) statsBox() picking.BoundingBox {
	return picking.BoundingBox{X: statsPanelX, Y: statsPanelY, Width: statsPanelWidth, Height: statsPanelHeight}
}

// Contains reports whether a cursor position is over a visible panel. The
// town does not pick actors hidden behind panels.
func (ui *UISystem) Contains(x, y int) bool {
	if !ui.game.showStats {
		return false
	}
	return ui.statsBox().Contains(geometry.Point{X: float64(x), Y: float64(y)})
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	if ui.game.showStats {
		ui.drawStats(screen)
	}
	ui.drawHover(screen)
}

func (ui *UISystem) drawStats(screen *ebiten.Image) {
	b := ui.statsBox()
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), UIColorPanel, false)

	m := ui.game.monitor.Metrics()
	lines := []string{
		fmt.Sprintf("TPS %.1f  FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("tick %d", ui.game.town.Ticks()),
		fmt.Sprintf("avg %v peak %v", m.AverageTick.Round(time.Microsecond), m.PeakTick.Round(time.Microsecond)),
		fmt.Sprintf("draw %v", m.LastDraw.Round(time.Microsecond)),
		fmt.Sprintf("actors %d events %d", m.Actors, m.Events),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(b.X)+4, int(b.Y)+2+i*16)
	}
}

// drawHover names the actor under the mouse in the bottom-left corner.
func (ui *UISystem) drawHover(screen *ebiten.Image) {
	a, ok := ui.game.town.Hover()
	if !ok {
		return
	}
	_, h := ui.game.viewSize()
	text := fmt.Sprintf("%s (%s)", a.Username, a.Presence())
	if a.Talking() {
		text += " talking"
	}
	y := h - hoverPanelHeight/2 - 4
	vector.DrawFilledRect(screen, 4, float32(y), float32(len(text)*6+8), 20, UIColorPanel, false)
	ebitenutil.DebugPrintAt(screen, text, 8, y+2)
}
