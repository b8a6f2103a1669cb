// Package picking resolves which actor the mouse is over.
package picking

import "dzone/internal/geometry"

// BoundingBox is a screen rectangle anchored at its top-left corner.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BoxAt places a w×h box at anchor shifted by (ox, oy), the way sprite regions
// are drawn.
func BoxAt(anchor geometry.Point, ox, oy, w, h int) BoundingBox {
	return BoundingBox{
		X:      anchor.X + float64(ox),
		Y:      anchor.Y + float64(oy),
		Width:  float64(w),
		Height: float64(h),
	}
}

// GetBounds returns the min/max coordinates of the box
func (bb BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	return bb.X, bb.Y, bb.X + bb.Width, bb.Y + bb.Height
}

// Contains checks if a point is inside the box. The right and bottom edges are exclusive.
func (bb BoundingBox) Contains(p geometry.Point) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return p.X >= minX && p.X < maxX && p.Y >= minY && p.Y < maxY
}

// Intersects checks if this box overlaps another
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()
	return !(maxX1 <= minX2 || maxX2 <= minX1 || maxY1 <= minY2 || maxY2 <= minY1)
}

// MoveBy shifts the box, used for camera panning
func (bb BoundingBox) MoveBy(dx, dy float64) BoundingBox {
	bb.X += dx
	bb.Y += dy
	return bb
}
