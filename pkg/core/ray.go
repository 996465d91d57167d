package core

import "fmt"

// Ray represents a half-line with an origin and a unit-length direction
type Ray struct {
	origin    Point
	direction Vector
}

// NewRay creates a new ray. The direction is normalized; a zero-length direction is rejected.
func NewRay(origin Point, direction Vector) (Ray, error) {
	unit, err := direction.Normalize()
	if err != nil {
		return Ray{}, &InvalidArgumentError{Name: "ray direction", Reason: err.Error()}
	}
	return Ray{origin: origin, direction: unit}, nil
}

// Origin returns the point the ray starts from
func (r Ray) Origin() Point {
	return r.origin
}

// Direction returns the unit direction of the ray
func (r Ray) Direction() Vector {
	return r.direction
}

// Shoot returns the point reached at parameter t along the ray
func (r Ray) Shoot(t float64) Point {
	return r.origin.Add(r.direction.Scale(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(%v, %v)", r.origin, r.direction)
}
