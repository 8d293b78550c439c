package math

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	d := a - b
	return d > -1e-5 && d < 1e-5
}

func TestVec2Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"add", Vec2{1, 2}.Add(Vec2{3, -4}), Vec2{4, -2}},
		{"sub", Vec2{1, 2}.Sub(Vec2{3, -4}), Vec2{-2, 6}},
		{"muladd", Vec2{1, 1}.MulAdd(Vec2{0, -1}, 2.5), Vec2{1, -1.5}},
		{"muladd zero", Vec2{7, 8}.MulAdd(Vec2{1, 1}, 0), Vec2{7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRotAxes(t *testing.T) {
	tests := []struct {
		angle float64
		x, y  Vec2
	}{
		{0, Vec2{1, 0}, Vec2{0, 1}},
		{math.Pi / 2, Vec2{0, 1}, Vec2{-1, 0}},
		{math.Pi, Vec2{-1, 0}, Vec2{0, -1}},
	}
	for _, tt := range tests {
		r := RotFromAngle(float32(tt.angle))
		x, y := r.XAxis(), r.YAxis()
		if !near(x.X, tt.x.X) || !near(x.Y, tt.x.Y) {
			t.Errorf("XAxis(%v) = %v, want %v", tt.angle, x, tt.x)
		}
		if !near(y.X, tt.y.X) || !near(y.Y, tt.y.Y) {
			t.Errorf("YAxis(%v) = %v, want %v", tt.angle, y, tt.y)
		}
	}
}

func TestOrtho2DCorners(t *testing.T) {
	m := Ortho2D(-25, 25, -5, 45)

	tests := []struct {
		in   Vec2
		want Vec2
	}{
		{Vec2{-25, -5}, Vec2{-1, -1}},
		{Vec2{25, -5}, Vec2{1, -1}},
		{Vec2{25, 45}, Vec2{1, 1}},
		{Vec2{-25, 45}, Vec2{-1, 1}},
		{Vec2{0, 20}, Vec2{0, 0}},
	}
	for _, tt := range tests {
		got := m.TransformVec2(tt.in)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("Ortho2D(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrtho2DKeepsDepthAndW(t *testing.T) {
	m := Ortho2D(-1, 1, -1, 1)
	if m[10] != 1 || m[14] != 0 {
		t.Errorf("z row = (%f, %f), want pass-through", m[10], m[14])
	}
	if m[3] != 0 || m[7] != 0 || m[11] != 0 || m[15] != 1 {
		t.Error("w row should be (0, 0, 0, 1)")
	}
}
