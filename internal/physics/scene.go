// Package physics hosts the Chipmunk2D simulation whose debug geometry the
// renderer draws.
package physics

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Body types.
const (
	BodyStatic  = "static"
	BodyDynamic = "dynamic"
)

// Shape kinds.
const (
	ShapeCircle  = "circle"
	ShapeBox     = "box"
	ShapeSegment = "segment"
)

// Joint kinds.
const (
	JointPin    = "pin"
	JointPivot  = "pivot"
	JointSlide  = "slide"
	JointSpring = "spring"
)

// Vec is a 2D point in scene files.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Scene describes a world layout.
type Scene struct {
	Gravity Vec         `yaml:"gravity"`
	Bodies  []BodySpec  `yaml:"bodies"`
	Joints  []JointSpec `yaml:"joints,omitempty"`
}

// BodySpec describes one rigid body.
type BodySpec struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Position Vec         `yaml:"position"`
	Angle    float64     `yaml:"angle"`
	Tracked  bool        `yaml:"tracked"` // camera/impulse target
	Shapes   []ShapeSpec `yaml:"shapes"`
}

// ShapeSpec describes one collision shape attached to a body.
type ShapeSpec struct {
	Kind string `yaml:"kind"`

	// circle
	Radius float64 `yaml:"radius"`
	Offset Vec     `yaml:"offset"`

	// box, as half extents
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`

	// segment
	A Vec `yaml:"a"`
	B Vec `yaml:"b"`

	Density    float64 `yaml:"density"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

// JointSpec connects two named bodies. Anchors are in body-local
// coordinates; Pivot is a world point.
type JointSpec struct {
	Kind    string `yaml:"kind"`
	A       string `yaml:"a"`
	B       string `yaml:"b"`
	AnchorA Vec    `yaml:"anchor_a"`
	AnchorB Vec    `yaml:"anchor_b"`

	// pivot
	Pivot Vec `yaml:"pivot"`

	// slide
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	// spring
	RestLength float64 `yaml:"rest_length"`
	Stiffness  float64 `yaml:"stiffness"`
	Damping    float64 `yaml:"damping"`
}

// DefaultScene is a ball and a box inside a walled arena.
func DefaultScene() *Scene {
	longBorder := ShapeSpec{Kind: ShapeBox, HalfWidth: 50, HalfHeight: 0.5, Friction: 0.2}
	shortBorder := ShapeSpec{Kind: ShapeBox, HalfWidth: 0.5, HalfHeight: 19, Friction: 0.2}

	return &Scene{
		Gravity: Vec{0, -10},
		Bodies: []BodySpec{
			{
				Name:     "ball",
				Type:     BodyDynamic,
				Position: Vec{10, 10},
				Tracked:  true,
				Shapes: []ShapeSpec{{
					Kind: ShapeCircle, Radius: 1, Offset: Vec{2, 2},
					Density: 1, Friction: 0.5, Elasticity: 0.4,
				}},
			},
			{Name: "top", Type: BodyStatic, Position: Vec{0, 19.5}, Shapes: []ShapeSpec{longBorder}},
			{Name: "bottom", Type: BodyStatic, Position: Vec{0, -19.5}, Shapes: []ShapeSpec{longBorder}},
			{Name: "left", Type: BodyStatic, Position: Vec{-49.5, 0}, Shapes: []ShapeSpec{shortBorder}},
			{Name: "right", Type: BodyStatic, Position: Vec{49.5, 0}, Shapes: []ShapeSpec{shortBorder}},
			{
				Name:     "box",
				Type:     BodyDynamic,
				Position: Vec{0, 11},
				Shapes: []ShapeSpec{{
					Kind: ShapeBox, HalfWidth: 3, HalfHeight: 3,
					Density: 1, Friction: 0.1,
				}},
			},
		},
	}
}

// LoadScene reads a scene from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

// ParseScene decodes and validates a YAML scene.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks body types, shape dimensions and joint endpoints.
func (s *Scene) Validate() error {
	var errs []error
	tracked := 0
	names := make(map[string]bool, len(s.Bodies))

	for i, b := range s.Bodies {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if b.Type != BodyStatic && b.Type != BodyDynamic {
			errs = append(errs, fmt.Errorf("body %s: unknown type %q", name, b.Type))
		}
		if b.Name != "" {
			if names[b.Name] {
				errs = append(errs, fmt.Errorf("body %s: duplicate name", name))
			}
			names[b.Name] = true
		}
		if b.Tracked {
			tracked++
			if b.Type != BodyDynamic {
				errs = append(errs, fmt.Errorf("body %s: only dynamic bodies can be tracked", name))
			}
		}
		if len(b.Shapes) == 0 {
			errs = append(errs, fmt.Errorf("body %s: no shapes", name))
		}
		for j, sh := range b.Shapes {
			if err := sh.validate(b.Type); err != nil {
				errs = append(errs, fmt.Errorf("body %s shape %d: %w", name, j, err))
			}
		}
	}
	if tracked > 1 {
		errs = append(errs, fmt.Errorf("%d tracked bodies, at most one allowed", tracked))
	}
	for i, j := range s.Joints {
		if err := j.validate(names); err != nil {
			errs = append(errs, fmt.Errorf("joint #%d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (sh ShapeSpec) validate(bodyType string) error {
	switch sh.Kind {
	case ShapeCircle:
		if sh.Radius <= 0 {
			return fmt.Errorf("circle radius must be positive, got %v", sh.Radius)
		}
	case ShapeBox:
		if sh.HalfWidth <= 0 || sh.HalfHeight <= 0 {
			return fmt.Errorf("box half extents must be positive, got %vx%v", sh.HalfWidth, sh.HalfHeight)
		}
	case ShapeSegment:
		if sh.A == sh.B {
			return errors.New("segment endpoints coincide")
		}
	default:
		return fmt.Errorf("unknown shape kind %q", sh.Kind)
	}
	if bodyType == BodyDynamic && sh.Density <= 0 {
		return fmt.Errorf("dynamic shape density must be positive, got %v", sh.Density)
	}
	return nil
}

func (j JointSpec) validate(bodies map[string]bool) error {
	switch j.Kind {
	case JointPin, JointPivot:
	case JointSlide:
		if j.Min < 0 || j.Max < j.Min {
			return fmt.Errorf("slide limits must satisfy 0 <= min <= max, got %v..%v", j.Min, j.Max)
		}
	case JointSpring:
		if j.Stiffness <= 0 {
			return fmt.Errorf("spring stiffness must be positive, got %v", j.Stiffness)
		}
		if j.RestLength < 0 || j.Damping < 0 {
			return errors.New("spring rest length and damping must not be negative")
		}
	default:
		return fmt.Errorf("unknown joint kind %q", j.Kind)
	}
	if !bodies[j.A] {
		return fmt.Errorf("unknown body %q", j.A)
	}
	if !bodies[j.B] {
		return fmt.Errorf("unknown body %q", j.B)
	}
	if j.A == j.B {
		return fmt.Errorf("body %q joined to itself", j.A)
	}
	return nil
}
