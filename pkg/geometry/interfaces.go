package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Intersect returns the ray parameter of the first intersection, if any.
	// The parameter is not filtered for positivity; callers apply their own bounds.
	Intersect(ray core.Ray) (float64, bool)

	// Normal returns the outward unit normal at a point on the surface
	Normal(point core.Point) core.Vector
}
