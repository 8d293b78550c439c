// Package color defines the RGBA color used for debug geometry.
package color

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	White   = Color{1, 1, 1, 1}
	Black   = Color{0, 0, 0, 1}
	Red     = Color{1, 0, 0, 1}
	Green   = Color{0, 1, 0, 1}
	Blue    = Color{0, 0, 1, 1}
	Yellow  = Color{1, 1, 0, 1}
	Magenta = Color{1, 0, 1, 1}

	// Background is the clear color of the debug view.
	Background = Color{0.2, 0.2, 0.5, 1}
)

// New creates a color from float components.
func New(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Fill returns the translucent interior color for a shape outlined in c:
// RGB halved, alpha fixed at 0.5.
func (c Color) Fill() Color {
	return Color{0.5 * c.R, 0.5 * c.G, 0.5 * c.B, 0.5}
}

// Array returns the components as a 4-element array.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
