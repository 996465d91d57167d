package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// MaxChannel is the largest value of a color channel
const MaxChannel = 255.0

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// ColorAt returns the surface color at a point in world space
	ColorAt(point core.Point) core.Vector
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vector
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vector) (*SolidColor, error) {
	if err := ValidateColor("color", color); err != nil {
		return nil, err
	}
	return &SolidColor{Color: color}, nil
}

// ColorAt returns the solid color regardless of position
func (s *SolidColor) ColorAt(point core.Point) core.Vector {
	return s.Color
}

// ValidateColor checks that every channel of an RGB vector lies in [0, 255]
func ValidateColor(name string, color core.Vector) error {
	for _, c := range color.Components() {
		if !(c >= 0 && c <= MaxChannel) {
			return core.InvalidArgument(name, "channel %g of %v is outside [0, 255]", c, color)
		}
	}
	return nil
}
