package math

import "github.com/chewxy/math32"

// Rot is a rotation kept as its sine and cosine.
type Rot struct {
	S, C float32
}

// RotFromAngle builds a rotation of angle radians.
func RotFromAngle(angle float32) Rot {
	s, c := math32.Sincos(angle)
	return Rot{S: s, C: c}
}

// XAxis is the unit x axis after rotation.
func (r Rot) XAxis() Vec2 {
	return Vec2{X: r.C, Y: r.S}
}

// YAxis is the unit y axis after rotation.
func (r Rot) YAxis() Vec2 {
	return Vec2{X: -r.S, Y: r.C}
}

// Transform places a body frame: origin P, orientation Q.
type Transform struct {
	P Vec2
	Q Rot
}
