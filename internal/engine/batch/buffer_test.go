package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/internal/engine/gpu/gputest"
	"github.com/Faultbox/physdraw/pkg/math"
)

// stubProjector returns whatever matrix it currently holds.
type stubProjector struct {
	m     math.Mat4
	calls int
}

func (p *stubProjector) ProjectionMatrix() math.Mat4 {
	p.calls++
	return p.m
}

func newPoints(t *testing.T) (*Buffer[PointVertex], *gputest.Recorder) {
	t.Helper()
	rec := gputest.NewRecorder()
	b := NewPoints(rec, &stubProjector{m: math.Ortho2D(-1, 1, -1, 1)})
	b.Create()
	t.Cleanup(b.Destroy)
	return b, rec
}

func TestCapacities(t *testing.T) {
	rec := gputest.NewRecorder()
	cam := &stubProjector{}

	assert.Equal(t, 512, NewPoints(rec, cam).Capacity())
	assert.Equal(t, 1024, NewLines(rec, cam).Capacity())
	assert.Equal(t, 1536, NewTriangles(rec, cam).Capacity())
}

func TestPointOverflowFlushesBeforeAppend(t *testing.T) {
	b, rec := newPoints(t)

	for i := 0; i < PointCapacity; i++ {
		b.Vertex(PointVertex{
			Pos:   math.Vec2{X: float32(i), Y: 0},
			Color: color.New(float32(i)/PointCapacity, 0, 0, 1),
			Size:  5,
		})
	}
	assert.Equal(t, PointCapacity, b.Count())
	assert.Empty(t, rec.Draws, "a full buffer is not flushed until the next vertex")

	b.Vertex(PointVertex{Pos: math.Vec2{X: -1, Y: -1}, Color: color.White, Size: 3})

	require.Len(t, rec.Draws, 1)
	draw := rec.Draws[0]
	assert.Equal(t, gpu.Points, draw.Topology)
	assert.Equal(t, PointCapacity, draw.Count)
	assert.True(t, draw.PointSize)
	assert.False(t, draw.Blend)
	assert.Equal(t, 1, b.Count())

	require.Len(t, draw.Uploads, 3)
	assert.Len(t, draw.Uploads[0], PointCapacity*2)
	assert.Len(t, draw.Uploads[1], PointCapacity*4)
	assert.Len(t, draw.Uploads[2], PointCapacity)
	assert.Equal(t, float32(511), draw.Uploads[0][2*511])
	assert.InDelta(t, 511.0/512.0, draw.Uploads[1][4*511], 1e-6)

	assert.Equal(t, []PointVertex{{Pos: math.Vec2{X: -1, Y: -1}, Color: color.White, Size: 3}}, b.Pending())
}

func TestOverflowCounts(t *testing.T) {
	for _, k := range []int{1, 2, 511, 512, 513, 1500} {
		rec := gputest.NewRecorder()
		b := NewPoints(rec, &stubProjector{})
		b.Create()

		for i := 0; i < PointCapacity+k; i++ {
			b.Vertex(PointVertex{Size: 1})
		}

		wantCount := (k-1)%PointCapacity + 1
		wantDraws := 1 + (k-1)/PointCapacity
		assert.Equal(t, wantCount, b.Count(), "k=%d", k)
		assert.Len(t, rec.Draws, wantDraws, "k=%d", k)
		for _, d := range rec.Draws {
			assert.Equal(t, PointCapacity, d.Count)
		}
		b.Destroy()
	}
}

func TestFlushEmptyIsNoop(t *testing.T) {
	b, rec := newPoints(t)

	b.Flush()
	b.Flush()

	assert.Empty(t, rec.Draws)
	assert.Equal(t, 0, b.Count())
	assert.Equal(t, Stats{}, b.TakeStats())
}

func TestFlushUploadsPrefixAndResets(t *testing.T) {
	rec := gputest.NewRecorder()
	b := NewLines(rec, &stubProjector{m: math.Ortho2D(-1, 1, -1, 1)})
	b.Create()
	defer b.Destroy()

	b.Vertex(LineVertex{Pos: math.Vec2{X: 1, Y: 2}, Color: color.Red})
	b.Vertex(LineVertex{Pos: math.Vec2{X: 3, Y: 4}, Color: color.Red})
	b.Flush()

	require.Len(t, rec.Draws, 1)
	d := rec.Draws[0]
	assert.Equal(t, gpu.Lines, d.Topology)
	assert.Equal(t, 2, d.Count)
	assert.Equal(t, []float32{1, 2, 3, 4}, d.Uploads[0])
	assert.Equal(t, []float32{1, 0, 0, 1, 1, 0, 0, 1}, d.Uploads[1])
	assert.False(t, d.Blend)
	assert.False(t, d.PointSize)
	assert.Equal(t, 0, b.Count())
	assert.Equal(t, uint32(0), rec.BoundProgram(), "program is unbound after flush")
}

func TestTriangleBlendOnlyDuringDraw(t *testing.T) {
	rec := gputest.NewRecorder()
	b := NewTriangles(rec, &stubProjector{})
	b.Create()
	defer b.Destroy()

	for i := 0; i < 3; i++ {
		b.Vertex(TriangleVertex{Color: color.Red.Fill()})
	}
	assert.False(t, rec.Blend())

	b.Flush()

	require.Len(t, rec.Draws, 1)
	assert.True(t, rec.Draws[0].Blend)
	assert.Equal(t, gpu.Triangles, rec.Draws[0].Topology)
	assert.False(t, rec.Blend(), "blending is disabled after the draw")
}

func TestProjectionReadAtEveryFlush(t *testing.T) {
	rec := gputest.NewRecorder()
	cam := &stubProjector{m: math.Ortho2D(-2, 0, -1, 1)}
	b := NewLines(rec, cam)
	b.Create()
	defer b.Destroy()

	b.Vertex(LineVertex{})
	b.Flush()
	cam.m = math.Ortho2D(-3, -1, -1, 1)
	b.Vertex(LineVertex{})
	b.Flush()

	require.Len(t, rec.Draws, 2)
	assert.Equal(t, float32(1), rec.Draws[0].Projection[12])
	assert.Equal(t, float32(2), rec.Draws[1].Projection[12])
	assert.Equal(t, 2, cam.calls)
}

func TestCompileFailureKeepsDrawing(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.FailCompile = true
	b := NewLines(rec, &stubProjector{})
	b.Create()
	defer b.Destroy()

	assert.Equal(t, uint32(0), b.Program())
	assert.False(t, b.Storage().Empty())

	b.Vertex(LineVertex{})
	b.Vertex(LineVertex{})
	b.Flush()

	require.Len(t, rec.Draws, 1)
	assert.Equal(t, uint32(0), rec.Draws[0].Program)
	assert.Equal(t, 0, b.Count())
}

func TestDestroyReleasesHandles(t *testing.T) {
	rec := gputest.NewRecorder()
	b := NewTriangles(rec, &stubProjector{})
	b.Create()

	assert.Equal(t, 1, rec.LivePrograms())
	assert.Equal(t, 1, rec.LiveStorages())
	assert.NotZero(t, b.Program())

	b.Destroy()

	assert.Equal(t, 0, rec.LivePrograms())
	assert.Equal(t, 0, rec.LiveStorages())
	assert.Zero(t, b.Program())
	assert.True(t, b.Storage().Empty())
}

func TestTakeStats(t *testing.T) {
	b, _ := newPoints(t)

	for i := 0; i < PointCapacity+10; i++ {
		b.Vertex(PointVertex{})
	}
	b.Flush()

	assert.Equal(t, Stats{DrawCalls: 2, Vertices: PointCapacity + 10}, b.TakeStats())
	assert.Equal(t, Stats{}, b.TakeStats())
}
