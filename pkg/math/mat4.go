package math

// Mat4 is a column-major 4x4 matrix, the layout glUniformMatrix4fv expects
// with transpose off. Element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Ortho2D maps the rectangle [left,right]x[bottom,top] onto [-1,1]².
// Z is passed through and w stays 1.
func Ortho2D(left, right, bottom, top float32) Mat4 {
	sx := 2 / (right - left)
	sy := 2 / (top - bottom)

	var m Mat4
	m[0] = sx
	m[5] = sy
	m[10] = 1
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[15] = 1
	return m
}

// TransformVec2 applies m to the point (v, 0, 1) and drops z.
func (m Mat4) TransformVec2(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[4]*v.Y + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[13],
	}
}
