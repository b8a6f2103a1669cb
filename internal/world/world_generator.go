package world

import "math/rand"

// GenerateOptions sizes a generated town.
type GenerateOptions struct {
	Width    int
	Height   int
	Terraces int
}

// Generate builds a small town: a tree border, two crossing roads, a pond and
// a few terraces that rise in half-level steps so actors can climb them.
func Generate(opts GenerateOptions, rng *rand.Rand) *Grid {
	g := NewGrid(max(opts.Width, 8), max(opts.Height, 8))

	g.addBorder()
	g.addRoads()
	g.addPond(rng)
	for i := 0; i < opts.Terraces; i++ {
		g.addTerrace(rng)
	}
	g.addTrees(rng)
	return g
}

func (g *Grid) addBorder() {
	for x := 0; x < g.Width; x++ {
		g.SetTerrain(x, 0, Terrain{Kind: TerrainTree})
		g.SetTerrain(x, g.Height-1, Terrain{Kind: TerrainTree})
	}
	for y := 0; y < g.Height; y++ {
		g.SetTerrain(0, y, Terrain{Kind: TerrainTree})
		g.SetTerrain(g.Width-1, y, Terrain{Kind: TerrainTree})
	}
}

func (g *Grid) addRoads() {
	midX, midY := g.Width/2, g.Height/2
	for x := 1; x < g.Width-1; x++ {
		g.SetTerrain(x, midY, Terrain{Kind: TerrainPath})
	}
	for y := 1; y < g.Height-1; y++ {
		g.SetTerrain(midX, y, Terrain{Kind: TerrainPath})
	}
}

func (g *Grid) addPond(rng *rand.Rand) {
	cx := 2 + rng.Intn(max(g.Width/2-3, 1))
	cy := 2 + rng.Intn(max(g.Height/2-3, 1))
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx*dy != 0 && rng.Float64() < 0.5 {
				continue
			}
			if g.TerrainAt(cx+dx, cy+dy).Kind == TerrainGround {
				g.SetTerrain(cx+dx, cy+dy, Terrain{Kind: TerrainWater})
			}
		}
	}
}

// addTerrace raises a rectangle to half a level with a one level core.
func (g *Grid) addTerrace(rng *rand.Rand) {
	w := 3 + rng.Intn(4)
	h := 3 + rng.Intn(4)
	x0 := 1 + rng.Intn(max(g.Width-w-2, 1))
	y0 := 1 + rng.Intn(max(g.Height-h-2, 1))
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if g.TerrainAt(x, y).Kind != TerrainGround {
				continue
			}
			height := 0.5
			if x > x0 && x < x0+w-1 && y > y0 && y < y0+h-1 {
				height = 1
			}
			g.SetTerrain(x, y, Terrain{Kind: TerrainGround, Height: height})
		}
	}
}

func (g *Grid) addTrees(rng *rand.Rand) {
	count := (g.Width * g.Height) / 40
	for i := 0; i < count; i++ {
		x := 1 + rng.Intn(g.Width-2)
		y := 1 + rng.Intn(g.Height-2)
		t := g.TerrainAt(x, y)
		if t.Kind == TerrainGround && t.Height == 0 {
			g.SetTerrain(x, y, Terrain{Kind: TerrainTree})
		}
	}
}
