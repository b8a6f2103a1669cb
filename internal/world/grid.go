package world

import (
	"math"

	"dzone/internal/geometry"
)

// Object is anything placed on the grid that others may stand on.
type Object interface {
	// Height is how far the object raises the walkable surface when stood on.
	Height() float64
	// Walkable reports whether others may currently land on top of the object.
	Walkable() bool
}

// Cell is a grid column.
type Cell struct {
	X int
	Y int
}

type slot struct {
	x, y int
	hz   int // height in half levels
}

func slotAt(x, y int, z float64) slot {
	return slot{x: x, y: y, hz: int(math.Round(z * 2))}
}

// Grid is the town: terrain heights, an occupancy index and move reservations.
// It is not safe for concurrent use; the tick loop owns it.
type Grid struct {
	Width  int
	Height int

	terrain  []Terrain
	objects  map[slot]Object
	placed   map[Object]slot
	reserved map[Cell]Object
	owners   map[Object]Cell

	ps pathScratch
}

// NewGrid returns a flat grid of ground at height 0.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:    width,
		Height:   height,
		terrain:  make([]Terrain, width*height),
		objects:  make(map[slot]Object),
		placed:   make(map[Object]slot),
		reserved: make(map[Cell]Object),
		owners:   make(map[Object]Cell),
	}
	for i := range g.terrain {
		g.terrain[i] = Terrain{Kind: TerrainGround}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// TerrainAt returns the terrain of a cell. Out of bounds cells are void.
func (g *Grid) TerrainAt(x, y int) Terrain {
	if !g.InBounds(x, y) {
		return Terrain{Kind: TerrainVoid}
	}
	return g.terrain[y*g.Width+x]
}

// SetTerrain replaces the terrain of a cell.
func (g *Grid) SetTerrain(x, y int, t Terrain) {
	if g.InBounds(x, y) {
		g.terrain[y*g.Width+x] = t
	}
}

// WalkableHeightAt returns the height an object would stand at on (x, y).
// Walkable objects stack on the terrain; an unwalkable object or a pending
// move reservation makes the cell unavailable.
func (g *Grid) WalkableHeightAt(x, y int) (float64, bool) {
	t := g.TerrainAt(x, y)
	if !t.Kind.Walkable() {
		return 0, false
	}
	if _, ok := g.reserved[Cell{x, y}]; ok {
		return 0, false
	}
	h := t.Height
	for {
		obj, ok := g.objects[slotAt(x, y, h)]
		if !ok {
			return h, true
		}
		if !obj.Walkable() {
			return 0, false
		}
		h += obj.Height()
	}
}

// ObjectAt returns the object whose base is at (x, y, z).
func (g *Grid) ObjectAt(x, y int, z float64) (Object, bool) {
	obj, ok := g.objects[slotAt(x, y, z)]
	return obj, ok
}

// ObjectsAt returns the stack on a cell from the ground up.
func (g *Grid) ObjectsAt(x, y int) []Object {
	var stack []Object
	h := g.TerrainAt(x, y).Height
	for {
		obj, ok := g.objects[slotAt(x, y, h)]
		if !ok {
			return stack
		}
		stack = append(stack, obj)
		h += obj.Height()
	}
}

// MoveObject places obj at pos, taking it off its previous slot.
func (g *Grid) MoveObject(obj Object, pos geometry.Position) {
	if old, ok := g.placed[obj]; ok {
		if g.objects[old] == obj {
			delete(g.objects, old)
		}
	}
	x, y := pos.Cell()
	s := slotAt(x, y, pos.Z)
	g.objects[s] = obj
	g.placed[obj] = s
}

// Remove takes obj off the grid and drops its reservation.
func (g *Grid) Remove(obj Object) {
	if s, ok := g.placed[obj]; ok {
		if g.objects[s] == obj {
			delete(g.objects, s)
		}
		delete(g.placed, obj)
	}
	g.Release(obj)
}

// Contains reports whether obj is on the grid.
func (g *Grid) Contains(obj Object) bool {
	_, ok := g.placed[obj]
	return ok
}

// Reserve marks (x, y) as the destination of a move by owner. An owner holds
// at most one reservation.
func (g *Grid) Reserve(owner Object, x, y int) {
	g.Release(owner)
	c := Cell{x, y}
	g.reserved[c] = owner
	g.owners[owner] = c
}

// Release drops owner's reservation, if any.
func (g *Grid) Release(owner Object) {
	if c, ok := g.owners[owner]; ok {
		if g.reserved[c] == owner {
			delete(g.reserved, c)
		}
		delete(g.owners, owner)
	}
}

// Reserved reports whether a move is heading for (x, y).
func (g *Grid) Reserved(x, y int) bool {
	_, ok := g.reserved[Cell{x, y}]
	return ok
}

// OpenCells lists every cell something could currently stand on.
func (g *Grid) OpenCells() []Cell {
	var cells []Cell
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if _, ok := g.WalkableHeightAt(x, y); ok && len(g.ObjectsAt(x, y)) == 0 {
				cells = append(cells, Cell{x, y})
			}
		}
	}
	return cells
}
