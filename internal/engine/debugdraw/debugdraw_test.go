package debugdraw

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/physdraw/internal/engine/batch"
	"github.com/Faultbox/physdraw/internal/engine/camera"
	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/internal/engine/gpu/gputest"
	"github.com/Faultbox/physdraw/pkg/math"
)

func newDebugDraw(t *testing.T) (*DebugDraw, *gputest.Recorder, *camera.Camera) {
	t.Helper()
	rec := gputest.NewRecorder()
	cam := camera.New(1280, 800)
	d := New(rec, cam)
	d.Create()
	t.Cleanup(d.Destroy)
	return d, rec, cam
}

func square() []math.Vec2 {
	return []math.Vec2{{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 12, Y: 12}, {X: 10, Y: 12}}
}

func TestSolidPolygonScenario(t *testing.T) {
	d, rec, cam := newDebugDraw(t)
	cam.Center = math.Vec2{X: 0, Y: 20}

	red := color.New(1, 0, 0, 1)
	d.DrawSolidPolygon(square(), red)

	tris := d.triangles.Pending()
	require.Len(t, tris, 6, "two filled triangles")
	for _, v := range tris {
		assert.Equal(t, color.New(0.5, 0, 0, 0.5), v.Color)
	}
	assert.Equal(t, []math.Vec2{
		{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 12, Y: 12},
		{X: 10, Y: 10}, {X: 12, Y: 12}, {X: 10, Y: 12},
	}, positions(tris))

	lines := d.lines.Pending()
	require.Len(t, lines, 8, "four outline segments")
	for _, v := range lines {
		assert.Equal(t, red, v.Color)
	}
	assert.Equal(t, []math.Vec2{
		{X: 10, Y: 12}, {X: 10, Y: 10},
		{X: 10, Y: 10}, {X: 12, Y: 10},
		{X: 12, Y: 10}, {X: 12, Y: 12},
		{X: 12, Y: 12}, {X: 10, Y: 12},
	}, linePositions(lines))

	d.Flush()

	assert.Equal(t, 0, d.triangles.Count())
	assert.Equal(t, 0, d.lines.Count())
	require.Len(t, rec.Draws, 2)
	assert.Equal(t, gpu.Triangles, rec.Draws[0].Topology, "fills are drawn before outlines")
	assert.Equal(t, 6, rec.Draws[0].Count)
	assert.True(t, rec.Draws[0].Blend)
	assert.Equal(t, gpu.Lines, rec.Draws[1].Topology)
	assert.Equal(t, 8, rec.Draws[1].Count)
	assert.Equal(t, cam.ProjectionMatrix(), rec.Draws[1].Projection)
}

func TestSolidPolygonCounts(t *testing.T) {
	for n := 3; n <= 8; n++ {
		d, _, _ := newDebugDraw(t)

		ring := circleRing(math.Vec2{}, 1)
		verts := make([]math.Vec2, n)
		for i := range verts {
			verts[i] = ring[i]
		}
		d.DrawSolidPolygon(verts, color.Blue)

		assert.Len(t, d.triangles.Pending(), 3*(n-2), "n=%d", n)
		assert.Len(t, d.lines.Pending(), 2*n, "n=%d", n)
	}
}

func TestPolygonOutlineOnly(t *testing.T) {
	d, _, _ := newDebugDraw(t)

	d.DrawPolygon(square(), color.Yellow)

	assert.Empty(t, d.triangles.Pending())
	assert.Len(t, d.lines.Pending(), 8)
}

func TestDegeneratePolygons(t *testing.T) {
	d, _, _ := newDebugDraw(t)

	d.DrawSolidPolygon(nil, color.Red)
	d.DrawSolidPolygon([]math.Vec2{{X: 1, Y: 1}}, color.Red)
	assert.Empty(t, d.triangles.Pending())
	assert.Empty(t, d.lines.Pending())

	d.DrawSolidPolygon([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, color.Red)
	assert.Empty(t, d.triangles.Pending())
	assert.Len(t, d.lines.Pending(), 4)
}

func TestCircleOutline(t *testing.T) {
	d, _, _ := newDebugDraw(t)
	center := math.Vec2{X: 3, Y: -2}

	d.DrawCircle(center, 2, color.White)

	lines := d.lines.Pending()
	require.Len(t, lines, 2*CircleSegments)
	assert.Empty(t, d.triangles.Pending())

	for _, v := range lines {
		off := v.Pos.Sub(center)
		assert.InDelta(t, 2, math32.Hypot(off.X, off.Y), 1e-4)
	}
	// Consecutive segments share endpoints and the loop closes
	for i := 0; i < CircleSegments-1; i++ {
		assert.Equal(t, lines[2*i+1].Pos, lines[2*i+2].Pos)
	}
	first, last := lines[0].Pos, lines[len(lines)-1].Pos
	assert.InDelta(t, first.X, last.X, 1e-4)
	assert.InDelta(t, first.Y, last.Y, 1e-4)
	assert.Equal(t, math.Vec2{X: 5, Y: -2}, first)
}

func TestSolidCircle(t *testing.T) {
	d, _, _ := newDebugDraw(t)
	center := math.Vec2{X: 0, Y: 5}
	axis := math.Vec2{X: 0, Y: 1}

	d.DrawSolidCircle(center, 1.5, axis, color.Green)

	tris := d.triangles.Pending()
	require.Len(t, tris, 3*CircleSegments)
	for i := 0; i < CircleSegments; i++ {
		assert.Equal(t, center, tris[3*i].Pos, "fan shares the center")
		assert.Equal(t, color.Green.Fill(), tris[3*i].Color)
	}

	lines := d.lines.Pending()
	require.Len(t, lines, 2*CircleSegments+2, "outline plus heading line")
	heading := lines[len(lines)-2:]
	assert.Equal(t, center, heading[0].Pos)
	assert.Equal(t, math.Vec2{X: 0, Y: 6.5}, heading[1].Pos)
	assert.Equal(t, color.Green, heading[1].Color)
}

func TestSegment(t *testing.T) {
	d, _, _ := newDebugDraw(t)

	d.DrawSegment(math.Vec2{X: 1, Y: 2}, math.Vec2{X: 3, Y: 4}, color.Magenta)

	assert.Equal(t, []batch.LineVertex{
		{Pos: math.Vec2{X: 1, Y: 2}, Color: color.Magenta},
		{Pos: math.Vec2{X: 3, Y: 4}, Color: color.Magenta},
	}, d.lines.Pending())
}

func TestTransformAxes(t *testing.T) {
	d, _, _ := newDebugDraw(t)
	origin := math.Vec2{X: 1, Y: 1}

	d.DrawTransform(math.Transform{P: origin, Q: math.RotFromAngle(0)})

	lines := d.lines.Pending()
	require.Len(t, lines, 4)
	assert.Equal(t, origin, lines[0].Pos)
	assert.InDelta(t, 1.4, lines[1].Pos.X, 1e-6)
	assert.Equal(t, float32(1), lines[1].Pos.Y)
	assert.Equal(t, XAxisColor, lines[0].Color)
	assert.Equal(t, XAxisColor, lines[1].Color)

	assert.Equal(t, origin, lines[2].Pos)
	assert.Equal(t, float32(1), lines[3].Pos.X)
	assert.InDelta(t, 1.4, lines[3].Pos.Y, 1e-6)
	assert.Equal(t, YAxisColor, lines[3].Color)
	assert.NotEqual(t, XAxisColor, YAxisColor)
}

func TestPoint(t *testing.T) {
	d, rec, _ := newDebugDraw(t)

	d.DrawPoint(math.Vec2{X: 4, Y: 4}, 8, color.Yellow)

	assert.Equal(t, []batch.PointVertex{{Pos: math.Vec2{X: 4, Y: 4}, Color: color.Yellow, Size: 8}}, d.points.Pending())

	d.Flush()
	require.Len(t, rec.Draws, 1)
	assert.Equal(t, gpu.Points, rec.Draws[0].Topology)
	assert.True(t, rec.Draws[0].PointSize)
	assert.Equal(t, []float32{8}, rec.Draws[0].Uploads[2])
}

func TestFlushOrder(t *testing.T) {
	d, rec, _ := newDebugDraw(t)

	d.DrawPoint(math.Vec2{}, 4, color.White)
	d.DrawSegment(math.Vec2{}, math.Vec2{X: 1}, color.White)
	d.DrawSolidPolygon(square(), color.White)
	d.Flush()

	require.Len(t, rec.Draws, 3)
	assert.Equal(t, gpu.Triangles, rec.Draws[0].Topology)
	assert.Equal(t, gpu.Lines, rec.Draws[1].Topology)
	assert.Equal(t, gpu.Points, rec.Draws[2].Topology)

	stats := d.TakeStats()
	assert.Equal(t, 3, stats.DrawCalls())
	assert.Equal(t, 10, stats.Lines.Vertices)
}

func TestManyCirclesOverflow(t *testing.T) {
	d, rec, _ := newDebugDraw(t)

	for i := 0; i < 100; i++ {
		d.DrawSolidCircle(math.Vec2{X: float32(i)}, 1, math.Vec2{X: 1}, color.Red)
	}

	// 100 circles × 48 triangle vertices = 4800 = 3 × 1536 + 192
	assert.Len(t, rec.DrawsOf(gpu.Triangles), 3)
	assert.Equal(t, 192, d.triangles.Count())
	// 100 × 34 line vertices = 3400 = 3 × 1024 + 328
	assert.Len(t, rec.DrawsOf(gpu.Lines), 3)
	assert.Equal(t, 328, d.lines.Count())

	d.Flush()
	assert.Equal(t, 0, d.triangles.Count())
	assert.Equal(t, 0, d.lines.Count())
}

func TestFlags(t *testing.T) {
	d, _, _ := newDebugDraw(t)
	assert.True(t, d.Flags().Has(DrawShapes))

	d.AppendFlags(DrawTransforms | DrawConstraints)
	assert.True(t, d.Flags().Has(DrawTransforms|DrawShapes))

	d.ClearFlags(DrawShapes)
	assert.False(t, d.Flags().Has(DrawShapes))

	d.SetFlags(DrawCollisionPoints)
	assert.Equal(t, DrawCollisionPoints, d.Flags())
}

func TestDestroyReleasesEverything(t *testing.T) {
	rec := gputest.NewRecorder()
	d := New(rec, camera.New(0, 0))
	d.Create()
	assert.Equal(t, 3, rec.LivePrograms())
	assert.Equal(t, 3, rec.LiveStorages())

	d.Destroy()
	assert.Equal(t, 0, rec.LivePrograms())
	assert.Equal(t, 0, rec.LiveStorages())
}

func positions(vs []batch.TriangleVertex) []math.Vec2 {
	out := make([]math.Vec2, len(vs))
	for i, v := range vs {
		out[i] = v.Pos
	}
	return out
}

func linePositions(vs []batch.LineVertex) []math.Vec2 {
	out := make([]math.Vec2, len(vs))
	for i, v := range vs {
		out[i] = v.Pos
	}
	return out
}
