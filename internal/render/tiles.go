package render

import (
	"image"
	"image/color"

	"dzone/internal/geometry"
	"dzone/internal/world"
)

const (
	tileW = 2 * geometry.TileHalfWidth
	tileH = 2 * geometry.TileQuarterHeight
)

// TerrainColor is the top color of a terrain kind. Void is not drawn.
func TerrainColor(k world.TerrainKind) (color.RGBA, bool) {
	switch k {
	case world.TerrainGround:
		return ColorGround, true
	case world.TerrainPath:
		return ColorPath, true
	case world.TerrainWall:
		return ColorWall, true
	case world.TerrainWater:
		return ColorWater, true
	case world.TerrainTree:
		return ColorTree, true
	}
	return color.RGBA{}, false
}

// Block draws an isometric tile: a diamond top plus, for raised tiles, the two
// visible sides dropping levels*LevelHeight pixels below it. The top corner of
// the diamond is at the image's top center.
func Block(top color.RGBA, levels float64) *image.RGBA {
	side := int(levels * geometry.LevelHeight)
	img := image.NewRGBA(image.Rect(0, 0, tileW, tileH+side))

	left, right := Shade(top, 0.35), Shade(top, 0.2)
	for x := 0; x < tileW; x++ {
		bottom := -1
		for y := 0; y < tileH; y++ {
			if inDiamond(x, y) {
				img.SetRGBA(x, y, top)
				bottom = y
			}
		}
		if bottom < 0 {
			continue
		}
		c := right
		if x < tileW/2 {
			c = left
		}
		for y := bottom + 1; y <= bottom+side; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// inDiamond reports whether pixel (x,y) lies on a tileW×tileH diamond.
func inDiamond(x, y int) bool {
	if y < 0 || y >= tileH {
		return false
	}
	cx := float64(x) + 0.5 - tileW/2
	cy := float64(y) + 0.5 - tileH/2
	if cx < 0 {
		cx = -cx
	}
	if cy < 0 {
		cy = -cy
	}
	return cx/(tileW/2)+cy/(tileH/2) <= 1
}

// TileOrigin is where the top-left of a tile block for cell (x,y) at surface
// height z lands relative to the world origin.
func TileOrigin(x, y int, z float64) geometry.Point {
	a := geometry.Anchor(geometry.Position{X: float64(x), Y: float64(y), Z: z})
	return geometry.Point{X: a.X - tileW/2, Y: a.Y - tileH/2}
}
