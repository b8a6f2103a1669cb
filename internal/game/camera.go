package game

import "dzone/internal/geometry"

// Camera maps between window pixels and town screen space. X and Y are where
// the town's origin lands in the window.
type Camera struct {
	X, Y float64

	dragging   bool
	dragX      int
	dragY      int
	dragStartX float64
	dragStartY float64
}

// CenterOn puts the town point p in the middle of a w×h view.
func (c *Camera) CenterOn(p geometry.Point, w, h int) {
	c.X = float64(w)/2 - p.X
	c.Y = float64(h)/2 - p.Y
}

// Pan moves the view by dx, dy pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// Origin is the window position of the town origin.
func (c *Camera) Origin() geometry.Point {
	return geometry.Point{X: c.X, Y: c.Y}
}

// ToTown converts a window pixel to town screen space.
func (c *Camera) ToTown(x, y int) geometry.Point {
	return geometry.Point{X: float64(x) - c.X, Y: float64(y) - c.Y}
}

// StartDrag anchors a drag at window pixel (x,y).
func (c *Camera) StartDrag(x, y int) {
	c.dragging = true
	c.dragX, c.dragY = x, y
	c.dragStartX, c.dragStartY = c.X, c.Y
}

// Drag follows the cursor while a drag is active.
func (c *Camera) Drag(x, y int) {
	if !c.dragging {
		return
	}
	c.X = c.dragStartX + float64(x-c.dragX)
	c.Y = c.dragStartY + float64(y-c.dragY)
}

func (c *Camera) EndDrag() { c.dragging = false }

func (c *Camera) Dragging() bool { return c.dragging }

// GridCenter is the town screen point at the middle of a w×h grid.
func GridCenter(w, h int) geometry.Point {
	return geometry.Anchor(geometry.Position{X: float64(w-1) / 2, Y: float64(h-1) / 2})
}
