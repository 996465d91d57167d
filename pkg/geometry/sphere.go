package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Point
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64) (*Sphere, error) {
	if !center.IsFinite() {
		return nil, core.InvalidArgument("sphere center", "%v is not finite", center)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, core.InvalidArgument("sphere radius", "%g must be positive and finite", radius)
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

// Intersect returns the near root of the ray-sphere equation.
// The root may be negative when the ray starts inside or beyond the sphere.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	co := s.Center.Sub(ray.Origin())
	f := co.Dot(ray.Direction())

	discriminant := f*f - co.Dot(co) + s.Radius*s.Radius
	if discriminant < 0 {
		return 0, false
	}

	return f - math.Sqrt(discriminant), true
}

// Normal returns the unit direction from the center to the point
func (s *Sphere) Normal(point core.Point) core.Vector {
	normal, err := point.Sub(s.Center).Normalize()
	if err != nil {
		// The center itself has no outward direction
		return core.Vector{}
	}
	return normal
}
