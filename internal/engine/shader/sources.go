package shader

import _ "embed"

// Source is a vertex/fragment pair.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// ProjectionUniform is the name of the projection matrix uniform shared by
// every debug program.
const ProjectionUniform = "uniProjMat"

//go:embed glsl/point.vert
var pointVert string

//go:embed glsl/point.frag
var pointFrag string

//go:embed glsl/line.vert
var lineVert string

//go:embed glsl/line.frag
var lineFrag string

//go:embed glsl/triangle.vert
var triangleVert string

//go:embed glsl/triangle.frag
var triangleFrag string

// Point renders sized points; gl_PointSize comes from the size attribute.
var Point = Source{Name: "point", Vertex: pointVert, Fragment: pointFrag}

// Line renders opaque line segments.
var Line = Source{Name: "line", Vertex: lineVert, Fragment: lineFrag}

// Triangle renders translucent fills.
var Triangle = Source{Name: "triangle", Vertex: triangleVert, Fragment: triangleFrag}
