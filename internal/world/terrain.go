package world

// TerrainKind is the surface of a grid cell.
type TerrainKind int

const (
	TerrainGround TerrainKind = iota // walkable at the cell's height
	TerrainPath                      // walkable, drawn as a road
	TerrainWall                      // blocks movement
	TerrainWater                     // blocks movement
	TerrainTree                      // blocks movement
	TerrainVoid                      // outside the town
)

func (k TerrainKind) Walkable() bool {
	return k == TerrainGround || k == TerrainPath
}

func (k TerrainKind) String() string {
	switch k {
	case TerrainGround:
		return "ground"
	case TerrainPath:
		return "path"
	case TerrainWall:
		return "wall"
	case TerrainWater:
		return "water"
	case TerrainTree:
		return "tree"
	default:
		return "void"
	}
}

// Terrain is a cell's surface and its height in levels.
type Terrain struct {
	Kind   TerrainKind
	Height float64
}
