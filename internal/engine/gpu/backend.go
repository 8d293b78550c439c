// Package gpu describes the rendering backend the debug renderer draws
// through, and provides an OpenGL implementation of it.
package gpu

import (
	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Topology is the primitive type of a draw call.
type Topology int

const (
	Points Topology = iota
	Lines
	Triangles
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// Attribute describes one vertex attribute channel. Channels are stored in
// separate buffers, bound to consecutive attribute locations.
type Attribute struct {
	Name       string
	Components int32
}

// Storage identifies vertex storage created by a Backend.
// The zero value is the empty sentinel.
type Storage struct {
	VAO  uint32
	VBOs []uint32
}

// Empty reports whether the storage has been released or never created.
func (s Storage) Empty() bool {
	return s.VAO == 0 && len(s.VBOs) == 0
}

// Backend is the GPU capability consumed by the batch buffers.
// All calls are synchronous and must happen on the thread owning the context.
type Backend interface {
	// CompileProgram compiles and links a shader program.
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32

	// CreateStorage allocates capacity vertices for every channel in layout.
	CreateStorage(layout []Attribute, capacity int) Storage
	DeleteStorage(s Storage)

	UseProgram(program uint32)
	SetMatrix4(location int32, m math.Mat4)

	// Upload replaces the start of a channel buffer with data.
	Upload(s Storage, channel int, data []float32)

	SetBlend(enabled bool)
	SetProgramPointSize(enabled bool)

	// Draw issues one draw call of count vertices from s.
	Draw(s Storage, topology Topology, count int)

	Clear(c color.Color)
	Viewport(width, height int)

	// ReadPixels returns the RGBA contents of the back buffer, bottom row first.
	ReadPixels(width, height int) []byte
}
