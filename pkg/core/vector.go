package core

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Dimension is the number of components of every Vector and Point
const Dimension = 3

// Vector represents a direction or displacement in 3D space
type Vector r3.Vector

// NewVector creates a new Vector
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// VectorFromSlice builds a Vector from raw components, failing on any dimensionality other than 3
func VectorFromSlice(c []float64) (Vector, error) {
	if len(c) != Dimension {
		return Vector{}, &DimensionError{Op: "vector", Got: len(c), Want: Dimension}
	}
	return Vector{X: c[0], Y: c[1], Z: c[2]}, nil
}

func (v Vector) raw() r3.Vector {
	return r3.Vector(v)
}

// Components returns the vector as a slice of its components
func (v Vector) Components() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) Vector {
	return Vector(v.raw().Add(other.raw()))
}

// Sub returns the difference of two vectors
func (v Vector) Sub(other Vector) Vector {
	return Vector(v.raw().Sub(other.raw()))
}

// Neg returns the inverted vector
func (v Vector) Neg() Vector {
	return Vector(v.raw().Mul(-1))
}

// Scale returns the vector scaled by a scalar
func (v Vector) Scale(s float64) Vector {
	return Vector(v.raw().Mul(s))
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return v.raw().Dot(other.raw())
}

// Cross returns the cross product of two vectors
func (v Vector) Cross(other Vector) Vector {
	return Vector(v.raw().Cross(other.raw()))
}

// Length returns the magnitude of the vector
func (v Vector) Length() float64 {
	return v.raw().Norm()
}

// Normalize returns a unit vector in the same direction.
// A zero-length vector has no direction and yields a DegenerateVectorError.
func (v Vector) Normalize() (Vector, error) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) {
		return Vector{}, &DegenerateVectorError{Vector: v}
	}
	return v.Scale(1 / length), nil
}

// Map applies fn to every component
func (v Vector) Map(fn func(float64) float64) Vector {
	return Vector{X: fn(v.X), Y: fn(v.Y), Z: fn(v.Z)}
}

// Combine merges two vectors component-wise with fn
func (v Vector) Combine(other Vector, fn func(a, b float64) float64) Vector {
	return Vector{X: fn(v.X, other.X), Y: fn(v.Y, other.Y), Z: fn(v.Z, other.Z)}
}

// Mul returns the component-wise product of two vectors
func (v Vector) Mul(other Vector) Vector {
	return Vector{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

// Max returns the largest component
func (v Vector) Max() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Mirror reflects the vector about axis. Both vectors are expected to enclose
// an angle below 90 degrees; the caller is responsible for that.
func (v Vector) Mirror(axis Vector) Vector {
	f := 2 * v.Dot(axis)
	return v.Sub(axis.Scale(f)).Neg()
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// ApproxEqual reports whether all components differ by at most epsilon
func (v Vector) ApproxEqual(other Vector, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Point represents a position in 3D space. It shares its storage with Vector
// but only supports the operations that make sense for positions.
type Point r3.Vector

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// PointFromSlice builds a Point from raw components, failing on any dimensionality other than 3
func PointFromSlice(c []float64) (Point, error) {
	if len(c) != Dimension {
		return Point{}, &DimensionError{Op: "point", Got: len(c), Want: Dimension}
	}
	return Point{X: c[0], Y: c[1], Z: c[2]}, nil
}

// Add moves the point along a vector
func (p Point) Add(v Vector) Point {
	return Point(r3.Vector(p).Add(v.raw()))
}

// Sub returns the vector pointing from other to p
func (p Point) Sub(other Point) Vector {
	return Vector(r3.Vector(p).Sub(r3.Vector(other)))
}

// Vector returns the position vector of the point relative to the origin
func (p Point) Vector() Vector {
	return Vector(p)
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return r3.Vector(p).Distance(r3.Vector(other))
}

// IsFinite reports whether no coordinate is NaN or infinite
func (p Point) IsFinite() bool {
	return Vector(p).IsFinite()
}

// ApproxEqual reports whether all coordinates differ by at most epsilon
func (p Point) ApproxEqual(other Point, epsilon float64) bool {
	return Vector(p).ApproxEqual(Vector(other), epsilon)
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g, %g)", p.X, p.Y, p.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
