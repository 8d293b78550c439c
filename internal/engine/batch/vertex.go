package batch

import (
	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Vertex is a vertex kind a Buffer can hold. Each kind is stored as
// separate float channels, one per attribute.
type Vertex interface {
	// Layout returns the attribute channels, in attribute location order.
	Layout() []gpu.Attribute
	// Put writes the vertex as entry i of every channel.
	Put(channels [][]float32, i int)
}

var (
	pointLayout = []gpu.Attribute{
		{Name: "v_position", Components: 2},
		{Name: "v_color", Components: 4},
		{Name: "v_size", Components: 1},
	}
	colorLayout = []gpu.Attribute{
		{Name: "v_position", Components: 2},
		{Name: "v_color", Components: 4},
	}
)

// PointVertex is a colored point with a pixel diameter.
type PointVertex struct {
	Pos   math.Vec2
	Color color.Color
	Size  float32
}

// Layout implements Vertex.
func (PointVertex) Layout() []gpu.Attribute { return pointLayout }

// Put implements Vertex.
func (v PointVertex) Put(ch [][]float32, i int) {
	putPosColor(ch, i, v.Pos, v.Color)
	ch[2][i] = v.Size
}

// LineVertex is one end of a line segment.
type LineVertex struct {
	Pos   math.Vec2
	Color color.Color
}

// Layout implements Vertex.
func (LineVertex) Layout() []gpu.Attribute { return colorLayout }

// Put implements Vertex.
func (v LineVertex) Put(ch [][]float32, i int) {
	putPosColor(ch, i, v.Pos, v.Color)
}

// TriangleVertex is one corner of a filled triangle.
type TriangleVertex struct {
	Pos   math.Vec2
	Color color.Color
}

// Layout implements Vertex.
func (TriangleVertex) Layout() []gpu.Attribute { return colorLayout }

// Put implements Vertex.
func (v TriangleVertex) Put(ch [][]float32, i int) {
	putPosColor(ch, i, v.Pos, v.Color)
}

func putPosColor(ch [][]float32, i int, p math.Vec2, c color.Color) {
	ch[0][2*i] = p.X
	ch[0][2*i+1] = p.Y
	ch[1][4*i] = c.R
	ch[1][4*i+1] = c.G
	ch[1][4*i+2] = c.B
	ch[1][4*i+3] = c.A
}
