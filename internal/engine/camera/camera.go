// Package camera provides the 2D orthographic camera of the debug view.
package camera

import (
	"github.com/Faultbox/physdraw/pkg/math"
)

const (
	// Extent is the half-size of the visible world rectangle, in world
	// units, on both axes. It does not depend on the window size.
	Extent = 25.0

	// PanLimit bounds the horizontal center when panning with the keyboard.
	PanLimit = 27.0
)

// Default window size and view center.
const (
	DefaultWidth  = 1280
	DefaultHeight = 800
)

// DefaultCenter is the initial view center.
var DefaultCenter = math.Vec2{X: 0, Y: 20}

// Camera is a 2D view: a movable center and a fixed half-extent.
// Width and Height are the window size in pixels and only affect display.
type Camera struct {
	Center math.Vec2
	Width  int
	Height int
}

// New creates a camera at DefaultCenter.
func New(width, height int) *Camera {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Camera{
		Center: DefaultCenter,
		Width:  width,
		Height: height,
	}
}

// Bounds returns the lower-left and upper-right corners of the visible
// world rectangle.
func (c *Camera) Bounds() (lower, upper math.Vec2) {
	e := math.Vec2{X: Extent, Y: Extent}
	return c.Center.Sub(e), c.Center.Add(e)
}

// ProjectionMatrix maps the visible rectangle onto [-1,1]² with z passed
// through. It is computed from the current center on every call.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	lower, upper := c.Bounds()
	return math.Ortho2D(lower.X, upper.X, lower.Y, upper.Y)
}

// Pan moves the center horizontally by dx, clamped to [-PanLimit, PanLimit].
func (c *Camera) Pan(dx float32) {
	x := c.Center.X + dx
	if x < -PanLimit {
		x = -PanLimit
	}
	if x > PanLimit {
		x = PanLimit
	}
	c.Center.X = x
}

// Follow centers the view on a tracked position.
func (c *Camera) Follow(target math.Vec2) {
	c.Center = target
}

// Resize updates the window size.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}
