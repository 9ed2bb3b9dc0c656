// Package lighting provides the color and light source types shared by the
// scene, the renderer and the day/night cycle.
package lighting

// Color is an RGB color with float32 components, normally in [0, 1].
type Color struct {
	R, G, B float32
}

// Hex builds a Color from a packed 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float32((rgb>>16)&0xff) / 255.0,
		G: float32((rgb>>8)&0xff) / 255.0,
		B: float32(rgb&0xff) / 255.0,
	}
}

// Lerp interpolates component-wise between c and other by t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + t*(other.R-c.R),
		G: c.G + t*(other.G-c.G),
		B: c.B + t*(other.B-c.B),
	}
}

// Scale returns the color with every component multiplied by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Vec returns the components as a flat array for GPU upload.
func (c Color) Vec() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
