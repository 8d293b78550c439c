// Package batch implements fixed-capacity vertex batches that are uploaded
// and drawn with a single draw call when flushed.
package batch

import (
	"go.uber.org/zap"

	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/internal/engine/shader"
	"github.com/Faultbox/physdraw/internal/logger"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Capacities of the three batches, in vertices. Lines and triangles expand
// every shape into several vertices and get more room.
const (
	PointCapacity    = 512
	LineCapacity     = 512 * 2
	TriangleCapacity = 512 * 3
)

// Projector supplies the projection used at flush time.
type Projector interface {
	ProjectionMatrix() math.Mat4
}

// Kind is the fixed rendering configuration of a batch.
type Kind struct {
	Name     string
	Topology gpu.Topology
	Capacity int
	Shader   shader.Source

	// Blend enables alpha blending around the draw call.
	Blend bool
	// ProgramPointSize lets the shader set the point diameter around the draw call.
	ProgramPointSize bool
}

// Rendering configurations.
var (
	PointKind = Kind{
		Name:             "points",
		Topology:         gpu.Points,
		Capacity:         PointCapacity,
		Shader:           shader.Point,
		ProgramPointSize: true,
	}
	LineKind = Kind{
		Name:     "lines",
		Topology: gpu.Lines,
		Capacity: LineCapacity,
		Shader:   shader.Line,
	}
	TriangleKind = Kind{
		Name:     "triangles",
		Topology: gpu.Triangles,
		Capacity: TriangleCapacity,
		Shader:   shader.Triangle,
		Blend:    true,
	}
)

// Stats counts the work a buffer has submitted.
type Stats struct {
	DrawCalls int
	Vertices  int
}

// Buffer accumulates vertices of one kind and flushes them as one draw call.
// It never grows: appending to a full buffer flushes it first.
type Buffer[V Vertex] struct {
	kind    Kind
	backend gpu.Backend
	camera  Projector
	log     *zap.Logger

	layout   []gpu.Attribute
	vertices []V
	channels [][]float32
	count    int

	storage gpu.Storage
	program uint32
	projLoc int32

	stats Stats
}

// New creates a buffer with all vertex memory preallocated.
// Call Create before use.
func New[V Vertex](kind Kind, backend gpu.Backend, camera Projector) *Buffer[V] {
	var zero V
	layout := zero.Layout()

	channels := make([][]float32, len(layout))
	for i, attr := range layout {
		channels[i] = make([]float32, kind.Capacity*int(attr.Components))
	}

	return &Buffer[V]{
		kind:     kind,
		backend:  backend,
		camera:   camera,
		log:      logger.Named("batch").With(zap.String("kind", kind.Name)),
		layout:   layout,
		vertices: make([]V, kind.Capacity),
		channels: channels,
		projLoc:  -1,
	}
}

// NewPoints creates the point batch.
func NewPoints(backend gpu.Backend, camera Projector) *Buffer[PointVertex] {
	return New[PointVertex](PointKind, backend, camera)
}

// NewLines creates the line batch.
func NewLines(backend gpu.Backend, camera Projector) *Buffer[LineVertex] {
	return New[LineVertex](LineKind, backend, camera)
}

// NewTriangles creates the triangle batch.
func NewTriangles(backend gpu.Backend, camera Projector) *Buffer[TriangleVertex] {
	return New[TriangleVertex](TriangleKind, backend, camera)
}

// Create compiles the program and allocates GPU storage for Capacity
// vertices per channel. A program that fails to build is logged and left
// as handle 0; drawing continues with it.
func (b *Buffer[V]) Create() {
	program, err := b.backend.CompileProgram(b.kind.Shader.Vertex, b.kind.Shader.Fragment)
	if err != nil {
		b.log.Error("debug draw program failed", zap.Error(err))
		program = 0
	}
	b.program = program
	b.projLoc = b.backend.UniformLocation(program, shader.ProjectionUniform)
	b.storage = b.backend.CreateStorage(b.layout, b.kind.Capacity)
	b.count = 0

	b.log.Debug("batch created",
		zap.Uint32("program", b.program),
		zap.Int("capacity", b.kind.Capacity),
	)
}

// Destroy releases the storage and program and resets the handles.
// Must be called once per Create.
func (b *Buffer[V]) Destroy() {
	b.backend.DeleteStorage(b.storage)
	b.backend.DeleteProgram(b.program)
	b.storage = gpu.Storage{}
	b.program = 0
	b.projLoc = -1
	b.count = 0
}

// Vertex appends one vertex, flushing first when the buffer is full.
func (b *Buffer[V]) Vertex(v V) {
	if b.count == b.kind.Capacity {
		b.Flush()
	}

	b.vertices[b.count] = v
	v.Put(b.channels, b.count)
	b.count++
}

// Flush uploads the pending vertices, draws them and empties the buffer.
// It does nothing when the buffer is empty.
//
// The projection is taken from the camera at flush time, so vertices
// appended before a camera move are drawn with the new projection when
// an overflow flush happens after it.
func (b *Buffer[V]) Flush() {
	if b.count == 0 {
		return
	}

	b.backend.UseProgram(b.program)
	b.backend.SetMatrix4(b.projLoc, b.camera.ProjectionMatrix())

	for i, attr := range b.layout {
		b.backend.Upload(b.storage, i, b.channels[i][:b.count*int(attr.Components)])
	}

	if b.kind.Blend {
		b.backend.SetBlend(true)
	}
	if b.kind.ProgramPointSize {
		b.backend.SetProgramPointSize(true)
	}

	b.backend.Draw(b.storage, b.kind.Topology, b.count)

	if b.kind.ProgramPointSize {
		b.backend.SetProgramPointSize(false)
	}
	if b.kind.Blend {
		b.backend.SetBlend(false)
	}
	b.backend.UseProgram(0)

	b.stats.DrawCalls++
	b.stats.Vertices += b.count
	b.count = 0
}

// Count returns the number of pending vertices.
func (b *Buffer[V]) Count() int { return b.count }

// Capacity returns the fixed vertex capacity.
func (b *Buffer[V]) Capacity() int { return b.kind.Capacity }

// Kind returns the rendering configuration.
func (b *Buffer[V]) Kind() Kind { return b.kind }

// Program returns the shader program handle, 0 if it failed to build.
func (b *Buffer[V]) Program() uint32 { return b.program }

// Storage returns the GPU storage handle.
func (b *Buffer[V]) Storage() gpu.Storage { return b.storage }

// Pending returns a copy of the vertices appended since the last flush.
func (b *Buffer[V]) Pending() []V {
	return append([]V(nil), b.vertices[:b.count]...)
}

// TakeStats returns the counters accumulated since the last call and resets them.
func (b *Buffer[V]) TakeStats() Stats {
	s := b.stats
	b.stats = Stats{}
	return s
}
