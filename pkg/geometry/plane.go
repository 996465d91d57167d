package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Point  // A point on the plane
	normal core.Vector // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point core.Point, normal core.Vector) (*Plane, error) {
	if !point.IsFinite() {
		return nil, core.InvalidArgument("plane point", "%v is not finite", point)
	}
	unit, err := normal.Normalize()
	if err != nil {
		return nil, core.InvalidArgument("plane normal", "%v", err)
	}
	return &Plane{Point: point, normal: unit}, nil
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	cosAlpha := ray.Direction().Dot(p.normal)

	// Parallel ray never meets the plane
	if cosAlpha == 0 {
		return 0, false
	}

	return -ray.Origin().Sub(p.Point).Dot(p.normal) / cosAlpha, true
}

// Normal returns the plane normal, which is the same everywhere
func (p *Plane) Normal(point core.Point) core.Vector {
	return p.normal
}
