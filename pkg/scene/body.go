package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Body is a renderable entity: a shape with a material
type Body struct {
	Shape    geometry.Shape
	Material material.Material
}

// NewBody creates a new body
func NewBody(shape geometry.Shape, mat material.Material) (*Body, error) {
	if shape == nil {
		return nil, core.InvalidArgument("body shape", "missing shape")
	}
	if mat.Color == nil {
		return nil, core.InvalidArgument("body material", "missing color or texture")
	}
	return &Body{Shape: shape, Material: mat}, nil
}

// ColorAt returns the body's albedo at a point on its surface
func (b *Body) ColorAt(point core.Point) core.Vector {
	return b.Material.ColorAt(point)
}

// Normal returns the outward surface normal at a point on the body
func (b *Body) Normal(point core.Point) core.Vector {
	return b.Shape.Normal(point)
}
