// Package math holds the float32 geometry shared by the camera, the batches
// and the physics adapter.
package math

// Vec2 is a point or direction in world units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// MulAdd returns v + dir*s, the point s units along dir from v.
func (v Vec2) MulAdd(dir Vec2, s float32) Vec2 {
	return Vec2{X: v.X + dir.X*s, Y: v.Y + dir.Y*s}
}
