package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Material describes how a surface responds to the Phong shader
type Material struct {
	// Shininess in [0, 1] weighs specular and mirror reflection against diffuse reflection
	Shininess float64
	// Smoothness is the Phong exponent of the specular highlight
	Smoothness float64
	// Color is either a flat color or a texture
	Color ColorSource
}

// New creates a new material
func New(color ColorSource, shininess, smoothness float64) (Material, error) {
	if color == nil {
		return Material{}, core.InvalidArgument("material color", "missing color or texture")
	}
	if !(shininess >= 0 && shininess <= 1) {
		return Material{}, core.InvalidArgument("shininess", "%g is outside [0, 1]", shininess)
	}
	if math.IsNaN(smoothness) || math.IsInf(smoothness, 0) || smoothness < 0 {
		return Material{}, core.InvalidArgument("smoothness", "%g must be non-negative and finite", smoothness)
	}
	return Material{Shininess: shininess, Smoothness: smoothness, Color: color}, nil
}

// NewSolid creates a material with a flat color
func NewSolid(color core.Vector, shininess, smoothness float64) (Material, error) {
	solid, err := NewSolidColor(color)
	if err != nil {
		return Material{}, err
	}
	return New(solid, shininess, smoothness)
}

// ColorAt returns the material's albedo at a point
func (m Material) ColorAt(point core.Point) core.Vector {
	return m.Color.ColorAt(point)
}
