package debugdraw

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdraw/internal/engine/batch"
	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/pkg/math"
)

const (
	// CircleSegments is the number of sides of a tessellated circle.
	CircleSegments = 16

	// AxisScale is the drawn length of coordinate frame axes.
	AxisScale = 0.4
)

// Axis colors of DrawTransform.
var (
	XAxisColor = color.Red
	YAxisColor = color.Green
)

// sinInc and cosInc rotate a unit vector by one circle segment.
var sinInc, cosInc = math32.Sincos(2 * math32.Pi / CircleSegments)

// circleRing returns the CircleSegments+1 points of a circle starting at
// angle 0, the last one closing the loop. Each point is obtained by
// rotating the previous radius vector, so no trigonometry runs per point.
func circleRing(center math.Vec2, radius float32) [CircleSegments + 1]math.Vec2 {
	var ring [CircleSegments + 1]math.Vec2
	r := math.Vec2{X: 1, Y: 0}
	for i := range ring {
		ring[i] = center.MulAdd(r, radius)
		r = math.Vec2{
			X: cosInc*r.X - sinInc*r.Y,
			Y: sinInc*r.X + cosInc*r.Y,
		}
	}
	return ring
}

func (d *DebugDraw) line(p1, p2 math.Vec2, c color.Color) {
	d.lines.Vertex(batch.LineVertex{Pos: p1, Color: c})
	d.lines.Vertex(batch.LineVertex{Pos: p2, Color: c})
}

func (d *DebugDraw) triangle(p1, p2, p3 math.Vec2, c color.Color) {
	d.triangles.Vertex(batch.TriangleVertex{Pos: p1, Color: c})
	d.triangles.Vertex(batch.TriangleVertex{Pos: p2, Color: c})
	d.triangles.Vertex(batch.TriangleVertex{Pos: p3, Color: c})
}

// outline emits the closed loop v[n-1]→v[0], v[0]→v[1], ..., v[n-2]→v[n-1].
func (d *DebugDraw) outline(vertices []math.Vec2, c color.Color) {
	if len(vertices) < 2 {
		return
	}
	p1 := vertices[len(vertices)-1]
	for _, p2 := range vertices {
		d.line(p1, p2, c)
		p1 = p2
	}
}

// DrawPolygon implements Drawer.
func (d *DebugDraw) DrawPolygon(vertices []math.Vec2, c color.Color) {
	d.outline(vertices, c)
}

// DrawSolidPolygon implements Drawer. The fill is a triangle fan from
// vertices[0], so the polygon must be convex.
func (d *DebugDraw) DrawSolidPolygon(vertices []math.Vec2, c color.Color) {
	fill := c.Fill()
	for i := 1; i < len(vertices)-1; i++ {
		d.triangle(vertices[0], vertices[i], vertices[i+1], fill)
	}
	d.outline(vertices, c)
}

// DrawCircle implements Drawer.
func (d *DebugDraw) DrawCircle(center math.Vec2, radius float32, c color.Color) {
	ring := circleRing(center, radius)
	for i := 0; i < CircleSegments; i++ {
		d.line(ring[i], ring[i+1], c)
	}
}

// DrawSolidCircle implements Drawer.
func (d *DebugDraw) DrawSolidCircle(center math.Vec2, radius float32, axis math.Vec2, c color.Color) {
	ring := circleRing(center, radius)

	fill := c.Fill()
	for i := 0; i < CircleSegments; i++ {
		d.triangle(center, ring[i], ring[i+1], fill)
	}
	for i := 0; i < CircleSegments; i++ {
		d.line(ring[i], ring[i+1], c)
	}

	// Fixed radius line so rotation is visible
	d.line(center, center.MulAdd(axis, radius), c)
}

// DrawSegment implements Drawer.
func (d *DebugDraw) DrawSegment(p1, p2 math.Vec2, c color.Color) {
	d.line(p1, p2, c)
}

// DrawTransform implements Drawer.
func (d *DebugDraw) DrawTransform(xf math.Transform) {
	d.line(xf.P, xf.P.MulAdd(xf.Q.XAxis(), AxisScale), XAxisColor)
	d.line(xf.P, xf.P.MulAdd(xf.Q.YAxis(), AxisScale), YAxisColor)
}

// DrawPoint implements Drawer.
func (d *DebugDraw) DrawPoint(p math.Vec2, size float32, c color.Color) {
	d.points.Vertex(batch.PointVertex{Pos: p, Color: c, Size: size})
}
