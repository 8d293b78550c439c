package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/debugdraw"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Shape colors by body state.
var (
	staticColor    = color.New(0.5, 0.9, 0.5, 1)
	kinematicColor = color.New(0.5, 0.5, 0.9, 1)
	sleepingColor  = color.New(0.6, 0.6, 0.6, 1)
	dynamicColor   = color.New(0.9, 0.7, 0.7, 1)
	jointColor     = color.New(0.5, 0.8, 0.8, 1)
	contactColor   = color.New(1, 0.2, 0.2, 1)
	outlineColor   = color.New(0.9, 0.9, 0.9, 1)
	aabbColor      = color.New(0.9, 0.3, 0.9, 1)
)

const (
	// fatSegmentMin is the radius above which a segment is drawn as a capsule.
	fatSegmentMin = 0.05

	contactPointSize = 5
)

// Adapter implements cp.Drawer on a debugdraw.Drawer. It is driven per
// shape and per constraint by World.Draw.
type Adapter struct {
	drawer debugdraw.Drawer
	verts  []math.Vec2
}

var _ cp.Drawer = (*Adapter)(nil)

// NewAdapter wraps d.
func NewAdapter(d debugdraw.Drawer) *Adapter {
	return &Adapter{drawer: d, verts: make([]math.Vec2, 0, 8)}
}

// DrawCircle draws a solid circle with a heading line at the body angle.
func (a *Adapter) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	axis := math.RotFromAngle(float32(angle)).XAxis()
	a.drawer.DrawSolidCircle(vec(pos), float32(radius), axis, fcolor(fill))
}

// DrawSegment draws a thin segment.
func (a *Adapter) DrawSegment(p1, p2 cp.Vector, fill cp.FColor, data interface{}) {
	a.drawer.DrawSegment(vec(p1), vec(p2), fcolor(fill))
}

// DrawFatSegment draws a segment with rounded ends as the center line plus
// end circles.
func (a *Adapter) DrawFatSegment(p1, p2 cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolor(fill)
	a.drawer.DrawSegment(vec(p1), vec(p2), c)
	if radius > fatSegmentMin {
		a.drawer.DrawCircle(vec(p1), float32(radius), c)
		a.drawer.DrawCircle(vec(p2), float32(radius), c)
	}
}

// DrawPolygon draws a filled convex polygon.
func (a *Adapter) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	a.verts = a.verts[:0]
	for i := 0; i < count; i++ {
		a.verts = append(a.verts, vec(verts[i]))
	}
	a.drawer.DrawSolidPolygon(a.verts, fcolor(fill))
}

// DrawDot draws a point.
func (a *Adapter) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	a.drawer.DrawPoint(vec(pos), float32(size), fcolor(fill))
}

// Flags implements cp.Drawer. cp.DrawShape and cp.DrawConstraint do not
// consult it; World.Draw decides what is reported.
func (a *Adapter) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS | cp.DRAW_COLLISION_POINTS
}

// OutlineColor implements cp.Drawer.
func (a *Adapter) OutlineColor() cp.FColor {
	return toFColor(outlineColor)
}

// ShapeColor colors a shape by the state of its body.
func (a *Adapter) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	body := shape.Body()
	switch {
	case body.GetType() == cp.BODY_STATIC:
		return toFColor(staticColor)
	case body.GetType() == cp.BODY_KINEMATIC:
		return toFColor(kinematicColor)
	case body.IsSleeping():
		return toFColor(sleepingColor)
	default:
		return toFColor(dynamicColor)
	}
}

// ConstraintColor implements cp.Drawer.
func (a *Adapter) ConstraintColor() cp.FColor {
	return toFColor(jointColor)
}

// CollisionPointColor implements cp.Drawer.
func (a *Adapter) CollisionPointColor() cp.FColor {
	return toFColor(contactColor)
}

// Data implements cp.Drawer.
func (a *Adapter) Data() interface{} {
	return nil
}

func vec(v cp.Vector) math.Vec2 {
	return math.Vec2{X: float32(v.X), Y: float32(v.Y)}
}

func fcolor(c cp.FColor) color.Color {
	return color.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toFColor(c color.Color) cp.FColor {
	return cp.FColor{R: c.R, G: c.G, B: c.B, A: c.A}
}
