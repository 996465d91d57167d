package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// MeshTransform places mesh vertices in the world. Vertices are scaled about
// the origin, rotated, then moved by Offset.
type MeshTransform struct {
	Scale    float64     // Uniform scale factor, 0 keeps the original size
	Rotation core.Vector // Rotation around the X, Y and Z axes in degrees, applied in that order
	Offset   core.Vector
}

// Apply transforms a single vertex
func (m MeshTransform) Apply(p core.Point) core.Point {
	v := p.Vector()
	if m.Scale != 0 {
		v = v.Scale(m.Scale)
	}
	v = rotateVertex(v, m.Rotation.Scale(math.Pi/180))
	return core.NewPoint(0, 0, 0).Add(v).Add(m.Offset)
}

// NewTriangleMesh builds the triangles of an indexed mesh. Faces whose vertices
// do not span a surface are skipped; their number is returned alongside.
func NewTriangleMesh(vertices []core.Point, faces [][3]int, transform MeshTransform) ([]*Triangle, int, error) {
	if transform.Scale < 0 || math.IsNaN(transform.Scale) || math.IsInf(transform.Scale, 0) {
		return nil, 0, core.InvalidArgument("mesh scale", "%g must be non-negative and finite", transform.Scale)
	}

	placed := make([]core.Point, len(vertices))
	for i, vertex := range vertices {
		placed[i] = transform.Apply(vertex)
	}

	triangles := make([]*Triangle, 0, len(faces))
	skipped := 0
	for i, face := range faces {
		for _, index := range face {
			if index < 0 || index >= len(placed) {
				return nil, 0, core.InvalidArgument("mesh face", "face %d references vertex %d of %d", i, index, len(placed))
			}
		}

		triangle, err := NewTriangle(placed[face[0]], placed[face[1]], placed[face[2]])
		if err != nil {
			skipped++
			continue
		}
		triangles = append(triangles, triangle)
	}

	return triangles, skipped, nil
}

// rotateVertex applies rotation in radians around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vector) core.Vector {
	// Rotation around X axis
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVector(vertex.X, y, z)
	}

	// Rotation around Y axis
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVector(x, vertex.Y, z)
	}

	// Rotation around Z axis
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVector(x, y, vertex.Z)
	}

	return vertex
}
