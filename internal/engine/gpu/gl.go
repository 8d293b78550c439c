package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/shader"
	"github.com/Faultbox/physdraw/internal/logger"
	"github.com/Faultbox/physdraw/pkg/math"
)

const float32Size = 4

// GL is a Backend on OpenGL 4.1 core.
type GL struct{}

// NewGL initializes OpenGL function pointers.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	return &GL{}, nil
}

// CompileProgram compiles and links a vertex/fragment pair.
func (*GL) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return shader.CompileProgram(vertexSrc, fragmentSrc)
}

// DeleteProgram releases a program. Zero is ignored.
func (*GL) DeleteProgram(program uint32) {
	if program != 0 {
		gl.DeleteProgram(program)
	}
}

// UniformLocation looks up a uniform; -1 if absent.
func (*GL) UniformLocation(program uint32, name string) int32 {
	return shader.GetUniform(program, name)
}

// CreateStorage creates a VAO with one dynamic VBO per attribute channel.
func (*GL) CreateStorage(layout []Attribute, capacity int) Storage {
	s := Storage{VBOs: make([]uint32, len(layout))}

	gl.GenVertexArrays(1, &s.VAO)
	gl.GenBuffers(int32(len(layout)), &s.VBOs[0])

	gl.BindVertexArray(s.VAO)
	for i, attr := range layout {
		loc := uint32(i)
		gl.EnableVertexAttribArray(loc)
		gl.BindBuffer(gl.ARRAY_BUFFER, s.VBOs[i])
		gl.VertexAttribPointerWithOffset(loc, attr.Components, gl.FLOAT, false, 0, 0)
		// Data is written later with BufferSubData
		gl.BufferData(gl.ARRAY_BUFFER, capacity*int(attr.Components)*float32Size, nil, gl.DYNAMIC_DRAW)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return s
}

// DeleteStorage releases the VAO and its buffers.
func (*GL) DeleteStorage(s Storage) {
	if s.VAO != 0 {
		gl.DeleteVertexArrays(1, &s.VAO)
	}
	if len(s.VBOs) > 0 {
		gl.DeleteBuffers(int32(len(s.VBOs)), &s.VBOs[0])
	}
}

// UseProgram binds a program; zero unbinds.
func (*GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// SetMatrix4 sets a mat4 uniform on the bound program.
func (*GL) SetMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// Upload writes data at the start of a channel buffer.
func (*GL) Upload(s Storage, channel int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, s.VBOs[channel])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*float32Size, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// SetBlend toggles straight alpha blending.
func (*GL) SetBlend(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		return
	}
	gl.Disable(gl.BLEND)
}

// SetProgramPointSize toggles shader-controlled point size.
func (*GL) SetProgramPointSize(enabled bool) {
	if enabled {
		gl.Enable(gl.PROGRAM_POINT_SIZE)
		return
	}
	gl.Disable(gl.PROGRAM_POINT_SIZE)
}

// Draw draws count vertices from s.
func (*GL) Draw(s Storage, topology Topology, count int) {
	gl.BindVertexArray(s.VAO)
	gl.DrawArrays(glMode(topology), 0, int32(count))
	gl.BindVertexArray(0)
}

// Clear clears the color buffer.
func (*GL) Clear(c color.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Viewport resizes the GL viewport.
func (*GL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadPixels reads the back buffer. Call it after Flush and before the swap.
func (*GL) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func glMode(t Topology) uint32 {
	switch t {
	case Points:
		return gl.POINTS
	case Lines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}
