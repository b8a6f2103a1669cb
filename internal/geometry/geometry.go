// Package geometry holds grid positions, facings and the isometric screen projection.
package geometry

import (
	"math"

	"dzone/internal/mathutil"
)

// Isometric tile constants in sheet pixels. Vertical screen travel per level is
// twice the per-axis horizontal contribution.
const (
	TileHalfWidth     = 16
	TileQuarterHeight = 8
	LevelHeight       = 16
)

// Position is a grid location. X and Y are whole cells, Z moves in half levels.
type Position struct {
	X, Y, Z float64
}

func (p Position) Add(q Position) Position {
	return Position{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

func (p Position) Sub(q Position) Position {
	return Position{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Position) Scale(f float64) Position {
	return Position{p.X * f, p.Y * f, p.Z * f}
}

// Cell returns the integer column and row of p.
func (p Position) Cell() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// DrawKey is the draw-order key of an object standing at p. Larger keys draw later.
func (p Position) DrawKey() float64 {
	return p.X + p.Y
}

// Distance is the planar distance between two positions. Height is ignored.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Point is a screen coordinate in sheet pixels.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// ScreenDelta maps a grid delta onto the screen.
func ScreenDelta(d Position) Point {
	return Point{
		X: (d.X - d.Y) * TileHalfWidth,
		Y: (d.X+d.Y)*TileQuarterHeight - d.Z*LevelHeight,
	}
}

// Anchor is the screen anchor of a committed position.
func Anchor(p Position) Point {
	return ScreenDelta(p)
}

// Project returns the screen position of an object anchored at anchor that is
// moving from pos to dest. Without a destination the anchor is returned as is.
// progress is clamped to [0,1].
func Project(anchor Point, pos, dest Position, moving bool, progress float64) Point {
	if !moving {
		return anchor
	}
	return anchor.Add(ScreenDelta(dest.Sub(pos).Scale(mathutil.Clamp01(progress))))
}
