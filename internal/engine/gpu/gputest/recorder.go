// Package gputest provides an in-memory gpu.Backend for tests.
package gputest

import (
	"errors"

	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/pkg/math"
)

// ErrCompile is returned by CompileProgram when FailCompile is set.
var ErrCompile = errors.New("gputest: compile failed")

// DrawCall captures the pipeline state at the moment of a draw.
type DrawCall struct {
	Topology   gpu.Topology
	Count      int
	Program    uint32
	Projection math.Mat4
	Blend      bool
	PointSize  bool
	// Uploads holds the last data uploaded to each channel of the storage.
	Uploads [][]float32
}

type storageState struct {
	layout   []gpu.Attribute
	capacity int
	uploads  [][]float32
}

// Recorder implements gpu.Backend by recording calls.
type Recorder struct {
	// FailCompile makes CompileProgram return 0 and ErrCompile.
	FailCompile bool

	Draws []DrawCall

	nextID     uint32
	programs   map[uint32]bool
	storages   map[uint32]*storageState
	matrix     math.Mat4
	bound      uint32
	blend      bool
	pointSize  bool
	clears     int
	viewport   [2]int
	clearColor color.Color
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		programs: make(map[uint32]bool),
		storages: make(map[uint32]*storageState),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

// CompileProgram returns a fresh handle unless FailCompile is set.
func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if r.FailCompile || vertexSrc == "" || fragmentSrc == "" {
		return 0, ErrCompile
	}
	p := r.id()
	r.programs[p] = true
	return p, nil
}

// DeleteProgram forgets a program.
func (r *Recorder) DeleteProgram(program uint32) {
	delete(r.programs, program)
}

// UniformLocation returns 0 for any name on a live program, else -1.
func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if !r.programs[program] {
		return -1
	}
	return 0
}

// CreateStorage allocates bookkeeping for a VAO and its channels.
func (r *Recorder) CreateStorage(layout []gpu.Attribute, capacity int) gpu.Storage {
	s := gpu.Storage{VAO: r.id(), VBOs: make([]uint32, len(layout))}
	for i := range s.VBOs {
		s.VBOs[i] = r.id()
	}
	r.storages[s.VAO] = &storageState{
		layout:   append([]gpu.Attribute(nil), layout...),
		capacity: capacity,
		uploads:  make([][]float32, len(layout)),
	}
	return s
}

// DeleteStorage forgets a storage.
func (r *Recorder) DeleteStorage(s gpu.Storage) {
	delete(r.storages, s.VAO)
}

// UseProgram records the bound program.
func (r *Recorder) UseProgram(program uint32) {
	r.bound = program
}

// SetMatrix4 records the last matrix uniform set.
func (r *Recorder) SetMatrix4(location int32, m math.Mat4) {
	r.matrix = m
}

// Upload copies data into the channel record. Uploads past capacity panic,
// mirroring a GL_INVALID_VALUE.
func (r *Recorder) Upload(s gpu.Storage, channel int, data []float32) {
	st, ok := r.storages[s.VAO]
	if !ok {
		panic("gputest: upload to unknown storage")
	}
	if len(data) > st.capacity*int(st.layout[channel].Components) {
		panic("gputest: upload exceeds storage capacity")
	}
	st.uploads[channel] = append([]float32(nil), data...)
}

// SetBlend records the blend state.
func (r *Recorder) SetBlend(enabled bool) {
	r.blend = enabled
}

// SetProgramPointSize records the point size state.
func (r *Recorder) SetProgramPointSize(enabled bool) {
	r.pointSize = enabled
}

// Draw records a draw call with the current state.
func (r *Recorder) Draw(s gpu.Storage, topology gpu.Topology, count int) {
	call := DrawCall{
		Topology:   topology,
		Count:      count,
		Program:    r.bound,
		Projection: r.matrix,
		Blend:      r.blend,
		PointSize:  r.pointSize,
	}
	if st, ok := r.storages[s.VAO]; ok {
		for _, u := range st.uploads {
			call.Uploads = append(call.Uploads, append([]float32(nil), u...))
		}
	}
	r.Draws = append(r.Draws, call)
}

// Clear counts clears and keeps the color.
func (r *Recorder) Clear(c color.Color) {
	r.clears++
	r.clearColor = c
}

// Viewport records the size.
func (r *Recorder) Viewport(width, height int) {
	r.viewport = [2]int{width, height}
}

// ReadPixels returns a frame filled with the last clear color.
func (r *Recorder) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	c := r.clearColor.Array()
	for i := 0; i < len(pixels); i += 4 {
		for j := 0; j < 4; j++ {
			pixels[i+j] = byte(c[j] * 255)
		}
	}
	return pixels
}

// Blend reports whether blending is currently enabled.
func (r *Recorder) Blend() bool { return r.blend }

// PointSize reports whether program point size is currently enabled.
func (r *Recorder) PointSize() bool { return r.pointSize }

// BoundProgram returns the currently bound program.
func (r *Recorder) BoundProgram() uint32 { return r.bound }

// LivePrograms returns the number of programs not yet deleted.
func (r *Recorder) LivePrograms() int { return len(r.programs) }

// LiveStorages returns the number of storages not yet deleted.
func (r *Recorder) LiveStorages() int { return len(r.storages) }

// Clears returns the number of Clear calls.
func (r *Recorder) Clears() int { return r.clears }

// ViewportSize returns the last viewport size.
func (r *Recorder) ViewportSize() (int, int) { return r.viewport[0], r.viewport[1] }

// DrawsOf returns the recorded draws of one topology.
func (r *Recorder) DrawsOf(t gpu.Topology) []DrawCall {
	var out []DrawCall
	for _, d := range r.Draws {
		if d.Topology == t {
			out = append(out, d)
		}
	}
	return out
}

// Reset drops recorded draws.
func (r *Recorder) Reset() {
	r.Draws = nil
}

var _ gpu.Backend = (*Recorder)(nil)
