package lights

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// PointLight is an infinitely small light source emitting in every direction
type PointLight struct {
	Position  core.Point
	Color     core.Vector // RGB in [0, 255]
	Lightness float64     // Intensity scalar
}

// NewPointLight creates a new point light
func NewPointLight(position core.Point, color core.Vector, lightness float64) (*PointLight, error) {
	if !position.IsFinite() {
		return nil, core.InvalidArgument("light position", "%v is not finite", position)
	}
	if err := material.ValidateColor("light color", color); err != nil {
		return nil, err
	}
	if math.IsNaN(lightness) || math.IsInf(lightness, 0) || lightness < 0 {
		return nil, core.InvalidArgument("light lightness", "%g must be non-negative and finite", lightness)
	}
	return &PointLight{Position: position, Color: color, Lightness: lightness}, nil
}

// DirectionFrom returns the unit vector pointing from a surface point to the light.
// It fails when the point coincides with the light.
func (l *PointLight) DirectionFrom(point core.Point) (core.Vector, error) {
	return l.Position.Sub(point).Normalize()
}
