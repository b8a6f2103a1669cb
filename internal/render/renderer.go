// Package render draws a town with ebiten: terrain blocks first, then actors
// in draw order with their nametags and speech.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"dzone/internal/geometry"
	"dzone/internal/town"
	"dzone/internal/world"
)

type blockKey struct {
	kind   world.TerrainKind
	levels float64
}

// Renderer draws town snapshots.
type Renderer struct {
	sheets *SheetImages
	blocks map[blockKey]*ebiten.Image
	bg     color.RGBA
}

func NewRenderer(sheets *SheetImages) *Renderer {
	return &Renderer{
		sheets: sheets,
		blocks: make(map[blockKey]*ebiten.Image),
		bg:     color.RGBA{24, 28, 36, 255},
	}
}

// Draw renders the grid and the drawables. origin is where the world origin
// lands on screen.
func (r *Renderer) Draw(screen *ebiten.Image, origin geometry.Point, grid *world.Grid, drawables []town.Drawable) {
	screen.Fill(r.bg)
	if grid != nil {
		r.drawTerrain(screen, origin, grid)
	}
	for _, d := range drawables {
		r.drawActor(screen, origin, d)
	}
	// Text goes on top so tags are never hidden behind neighbours.
	for _, d := range drawables {
		r.drawText(screen, origin, d)
	}
}

// drawTerrain walks the grid in rising x+y so nearer blocks cover farther ones.
func (r *Renderer) drawTerrain(screen *ebiten.Image, origin geometry.Point, grid *world.Grid) {
	for sum := 0; sum <= grid.Width+grid.Height-2; sum++ {
		for x := max(0, sum-grid.Height+1); x <= min(sum, grid.Width-1); x++ {
			y := sum - x
			t := grid.TerrainAt(x, y)
			img := r.block(t)
			if img == nil {
				continue
			}
			at := TileOrigin(x, y, t.Height).Add(origin)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(at.X, at.Y)
			screen.DrawImage(img, op)
		}
	}
}

func (r *Renderer) block(t world.Terrain) *ebiten.Image {
	key := blockKey{t.Kind, t.Height}
	if img, ok := r.blocks[key]; ok {
		return img
	}
	c, ok := TerrainColor(t.Kind)
	if !ok {
		r.blocks[key] = nil
		return nil
	}
	levels := t.Height
	if t.Kind == world.TerrainWall || t.Kind == world.TerrainTree {
		// Obstacles stand a full level above their base.
		levels++
	}
	img := ebiten.NewImageFromImage(Block(c, levels))
	r.blocks[key] = img
	return img
}

func (r *Renderer) drawActor(screen *ebiten.Image, origin geometry.Point, d town.Drawable) {
	if d.Region.W <= 0 || d.Region.H <= 0 {
		return
	}
	img := r.sheets.Region(d.Tint, d.Region)
	at := d.Screen.Add(origin)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(at.X+float64(d.Region.OX), at.Y+float64(d.Region.OY))
	if d.Hover {
		op.ColorScale.Scale(1.15, 1.15, 1.15, 1)
	}
	screen.DrawImage(img, op)
}

func (r *Renderer) drawText(screen *ebiten.Image, origin geometry.Point, d town.Drawable) {
	at := d.Screen.Add(origin)
	if d.Nametag != "" {
		clr := ColorNametag
		if d.Hover {
			clr = ColorHover
		}
		drawNametag(screen, d.Nametag, at.X, at.Y, clr)
	}
	if d.Message != "" {
		drawMessage(screen, d.Message, at.X, at.Y+float64(d.Region.OY)-2)
	}
}
