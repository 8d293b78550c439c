// Package debugdraw turns the shapes reported by a physics simulation into
// batched points, lines and triangles.
package debugdraw

import (
	"go.uber.org/zap"

	"github.com/Faultbox/physdraw/internal/engine/batch"
	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/internal/logger"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Drawer receives debug geometry in world space. A simulation calls it
// without knowing which renderer is behind it.
type Drawer interface {
	// DrawPolygon draws a closed polygon outline.
	DrawPolygon(vertices []math.Vec2, c color.Color)
	// DrawSolidPolygon draws a translucent filled polygon with an opaque outline.
	DrawSolidPolygon(vertices []math.Vec2, c color.Color)
	// DrawCircle draws a circle outline.
	DrawCircle(center math.Vec2, radius float32, c color.Color)
	// DrawSolidCircle draws a filled circle plus a radius line along axis.
	DrawSolidCircle(center math.Vec2, radius float32, axis math.Vec2, c color.Color)
	// DrawSegment draws a line segment.
	DrawSegment(p1, p2 math.Vec2, c color.Color)
	// DrawTransform draws the two axes of a coordinate frame.
	DrawTransform(xf math.Transform)
	// DrawPoint draws a point of the given pixel size.
	DrawPoint(p math.Vec2, size float32, c color.Color)
}

// FrameStats summarizes the draw calls of one Flush.
type FrameStats struct {
	Points    batch.Stats
	Lines     batch.Stats
	Triangles batch.Stats
}

// DrawCalls returns the total number of draw calls.
func (s FrameStats) DrawCalls() int {
	return s.Points.DrawCalls + s.Lines.DrawCalls + s.Triangles.DrawCalls
}

// DebugDraw implements Drawer on top of three owned batch buffers.
type DebugDraw struct {
	flags Flags

	points    *batch.Buffer[batch.PointVertex]
	lines     *batch.Buffer[batch.LineVertex]
	triangles *batch.Buffer[batch.TriangleVertex]
}

var _ Drawer = (*DebugDraw)(nil)

// New creates a DebugDraw drawing through backend with the camera's
// projection. Call Create before drawing.
func New(backend gpu.Backend, camera batch.Projector) *DebugDraw {
	return &DebugDraw{
		flags:     DrawShapes,
		points:    batch.NewPoints(backend, camera),
		lines:     batch.NewLines(backend, camera),
		triangles: batch.NewTriangles(backend, camera),
	}
}

// Create allocates GPU resources of all three buffers.
func (d *DebugDraw) Create() {
	d.points.Create()
	d.lines.Create()
	d.triangles.Create()

	logger.Named("debugdraw").Info("debug draw created",
		zap.Uint32("pointProgram", d.points.Program()),
		zap.Uint32("lineProgram", d.lines.Program()),
		zap.Uint32("triangleProgram", d.triangles.Program()),
	)
}

// Destroy releases GPU resources of all three buffers.
func (d *DebugDraw) Destroy() {
	d.points.Destroy()
	d.lines.Destroy()
	d.triangles.Destroy()
}

// Flush draws everything pending: triangles first so outlines stay on top
// of fills, then lines, then points.
func (d *DebugDraw) Flush() {
	d.triangles.Flush()
	d.lines.Flush()
	d.points.Flush()
}

// TakeStats returns the draw counters since the last call.
func (d *DebugDraw) TakeStats() FrameStats {
	return FrameStats{
		Points:    d.points.TakeStats(),
		Lines:     d.lines.TakeStats(),
		Triangles: d.triangles.TakeStats(),
	}
}

// SetFlags replaces the flags.
func (d *DebugDraw) SetFlags(f Flags) { d.flags = f }

// AppendFlags sets additional flags.
func (d *DebugDraw) AppendFlags(f Flags) { d.flags |= f }

// ClearFlags clears flags.
func (d *DebugDraw) ClearFlags(f Flags) { d.flags &^= f }

// Flags returns the current flags.
func (d *DebugDraw) Flags() Flags { return d.flags }
