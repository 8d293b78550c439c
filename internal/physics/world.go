package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/physdraw/internal/engine/debugdraw"
	"github.com/Faultbox/physdraw/internal/logger"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Settings controls stepping.
type Settings struct {
	TimeStep   float64
	Iterations int
	Impulse    Vec
}

// DefaultSettings steps at 30 Hz.
func DefaultSettings() Settings {
	return Settings{
		TimeStep:   1.0 / 30.0,
		Iterations: 10,
		Impulse:    Vec{1.5, 1.5},
	}
}

// FlaggedDrawer is a Drawer that also says what it wants drawn.
type FlaggedDrawer interface {
	debugdraw.Drawer
	Flags() debugdraw.Flags
}

// World is a Chipmunk space built from a Scene.
type World struct {
	space    *cp.Space
	settings Settings
	tracked  *cp.Body
	bodies   map[string]*cp.Body
	steps    int
	log      *zap.Logger
}

// NewWorld builds a space from a validated scene.
func NewWorld(scene *Scene, settings Settings) (*World, error) {
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	if settings.TimeStep <= 0 {
		return nil, fmt.Errorf("time step must be positive, got %v", settings.TimeStep)
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: scene.Gravity.X, Y: scene.Gravity.Y})
	if settings.Iterations > 0 {
		space.Iterations = uint(settings.Iterations)
	}

	w := &World{
		space:    space,
		settings: settings,
		bodies:   make(map[string]*cp.Body, len(scene.Bodies)),
		log:      logger.Named("physics"),
	}

	for _, spec := range scene.Bodies {
		body := w.addBody(spec)
		if spec.Name != "" {
			w.bodies[spec.Name] = body
		}
		if spec.Tracked {
			w.tracked = body
		}
	}

	for _, spec := range scene.Joints {
		w.space.AddConstraint(w.newJoint(spec))
	}

	w.log.Info("world created",
		zap.Int("bodies", len(scene.Bodies)),
		zap.Int("joints", len(scene.Joints)),
		zap.Float64("timeStep", settings.TimeStep),
	)
	return w, nil
}

func (w *World) addBody(spec BodySpec) *cp.Body {
	var body *cp.Body
	if spec.Type == BodyStatic {
		body = cp.NewStaticBody()
	} else {
		// Mass and moment accumulate from shape densities
		body = cp.NewBody(0, 0)
	}
	body.SetPosition(cp.Vector{X: spec.Position.X, Y: spec.Position.Y})
	body.SetAngle(spec.Angle)
	w.space.AddBody(body)

	for _, sh := range spec.Shapes {
		var shape *cp.Shape
		switch sh.Kind {
		case ShapeCircle:
			shape = cp.NewCircle(body, sh.Radius, cp.Vector{X: sh.Offset.X, Y: sh.Offset.Y})
		case ShapeBox:
			shape = cp.NewBox(body, 2*sh.HalfWidth, 2*sh.HalfHeight, 0)
		case ShapeSegment:
			shape = cp.NewSegment(body, cp.Vector{X: sh.A.X, Y: sh.A.Y}, cp.Vector{X: sh.B.X, Y: sh.B.Y}, 0)
		}
		shape.SetFriction(sh.Friction)
		shape.SetElasticity(sh.Elasticity)
		w.space.AddShape(shape)
		if spec.Type == BodyDynamic {
			shape.SetDensity(sh.Density)
		}
	}

	return body
}

func (w *World) newJoint(spec JointSpec) *cp.Constraint {
	a, b := w.bodies[spec.A], w.bodies[spec.B]
	anchorA := cp.Vector{X: spec.AnchorA.X, Y: spec.AnchorA.Y}
	anchorB := cp.Vector{X: spec.AnchorB.X, Y: spec.AnchorB.Y}

	switch spec.Kind {
	case JointPivot:
		return cp.NewPivotJoint(a, b, cp.Vector{X: spec.Pivot.X, Y: spec.Pivot.Y})
	case JointSlide:
		return cp.NewSlideJoint(a, b, anchorA, anchorB, spec.Min, spec.Max)
	case JointSpring:
		return cp.NewDampedSpring(a, b, anchorA, anchorB, spec.RestLength, spec.Stiffness, spec.Damping)
	default:
		return cp.NewPinJoint(a, b, anchorA, anchorB)
	}
}

// Step advances the simulation by one time step.
func (w *World) Step() {
	w.space.Step(w.settings.TimeStep)
	w.steps++
}

// Steps returns the number of steps taken.
func (w *World) Steps() int { return w.steps }

// ApplyImpulse pushes the tracked body. It does nothing without one.
func (w *World) ApplyImpulse() {
	if w.tracked == nil {
		return
	}
	imp := cp.Vector{X: w.settings.Impulse.X, Y: w.settings.Impulse.Y}
	w.tracked.ApplyImpulseAtWorldPoint(imp, w.tracked.Position())
}

// TrackedPosition returns the position of the tracked body.
func (w *World) TrackedPosition() (math.Vec2, bool) {
	if w.tracked == nil {
		return math.Vec2{}, false
	}
	return vec(w.tracked.Position()), true
}

// BodyPosition returns the position of a named body.
func (w *World) BodyPosition(name string) (math.Vec2, bool) {
	b, ok := w.bodies[name]
	if !ok {
		return math.Vec2{}, false
	}
	return vec(b.Position()), true
}

// Draw reports the space to d. Each part is gated by d's flags:
// shapes, constraints, contact points, body frames and bounding boxes.
func (w *World) Draw(d FlaggedDrawer) {
	flags := d.Flags()
	adapter := NewAdapter(d)

	if flags.Has(debugdraw.DrawShapes) {
		w.space.EachShape(func(shape *cp.Shape) {
			cp.DrawShape(shape, adapter)
		})
	}

	if flags.Has(debugdraw.DrawConstraints) {
		w.space.EachConstraint(func(c *cp.Constraint) {
			cp.DrawConstraint(c, adapter)
		})
	}

	if flags.Has(debugdraw.DrawCollisionPoints) {
		w.drawContacts(d)
	}

	if flags.Has(debugdraw.DrawTransforms) {
		w.space.EachBody(func(body *cp.Body) {
			if body.GetType() != cp.BODY_DYNAMIC {
				return
			}
			rot := body.Rotation()
			d.DrawTransform(math.Transform{
				P: vec(body.Position()),
				Q: math.Rot{S: float32(rot.Y), C: float32(rot.X)},
			})
		})
	}

	if flags.Has(debugdraw.DrawAABBs) {
		w.space.EachShape(func(shape *cp.Shape) {
			bb := shape.BB()
			d.DrawPolygon([]math.Vec2{
				{X: float32(bb.L), Y: float32(bb.B)},
				{X: float32(bb.R), Y: float32(bb.B)},
				{X: float32(bb.R), Y: float32(bb.T)},
				{X: float32(bb.L), Y: float32(bb.T)},
			}, aabbColor)
		})
	}
}

// drawContacts draws one point per contact. Arbiters are listed on both of
// their bodies, so each is visited once.
func (w *World) drawContacts(d debugdraw.Drawer) {
	seen := make(map[*cp.Arbiter]bool)
	w.space.EachBody(func(body *cp.Body) {
		body.EachArbiter(func(arb *cp.Arbiter) {
			if seen[arb] {
				return
			}
			seen[arb] = true

			set := arb.ContactPointSet()
			for i := 0; i < set.Count; i++ {
				p := set.Points[i].PointA.Lerp(set.Points[i].PointB, 0.5)
				d.DrawPoint(vec(p), contactPointSize, contactColor)
			}
		})
	})
}
