package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"dzone/internal/game/keytracker"
	"dzone/internal/town"
)

const panSpeed = 4.0

// InputHandler turns keyboard and mouse state into camera moves and the
// town's per-tick input.
type InputHandler struct {
	game *TownGame
	keys *keytracker.Tracker

	cursorX, cursorY int
}

func NewInputHandler(game *TownGame) *InputHandler {
	return &InputHandler{game: game, keys: keytracker.New()}
}

// HandleInput processes one update's worth of input.
func (ih *InputHandler) HandleInput() town.Input {
	ih.handleKeys()
	ih.handleMouse()

	w, h := ih.game.viewSize()
	return town.Input{
		Mouse:    ih.game.camera.ToTown(ih.cursorX, ih.cursorY),
		MouseOut: !insideView(ih.cursorX, ih.cursorY, w, h),
	}
}

func (ih *InputHandler) handleKeys() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy -= panSpeed
	}
	ih.game.camera.Pan(dx, dy)

	if ih.keys.JustPressed(ebiten.KeyF3) {
		ih.game.showStats = !ih.game.showStats
	}
	if ih.keys.JustPressed(ebiten.KeyHome) {
		w, h := ih.game.viewSize()
		grid := ih.game.town.Grid()
		ih.game.camera.CenterOn(GridCenter(grid.Width, grid.Height), w, h)
	}
}

func (ih *InputHandler) handleMouse() {
	ih.cursorX, ih.cursorY = ebiten.CursorPosition()

	cam := &ih.game.camera
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if !cam.Dragging() {
			cam.StartDrag(ih.cursorX, ih.cursorY)
		}
		cam.Drag(ih.cursorX, ih.cursorY)
	} else if cam.Dragging() {
		cam.EndDrag()
	}
}

// insideView reports whether a cursor position is on a w×h screen.
func insideView(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}
