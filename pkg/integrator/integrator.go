package integrator

import (
	"image/color"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Shade computes the displayable color seen along a view ray
	Shade(ray core.Ray) RGB
}

// RGB is a displayable color with channels in [0, 255]
type RGB struct {
	R, G, B int
}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	return c.Color().RGBA()
}

// Color converts to an opaque color.RGBA. Channels outside [0, 255] are clamped.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B), A: 255}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
