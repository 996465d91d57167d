package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	A, B, C core.Point  // The three vertices
	u, v    core.Vector // Edges B-A and C-A
	normal  core.Vector // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices.
// Coincident or collinear vertices span no surface and are rejected.
func NewTriangle(a, b, c core.Point) (*Triangle, error) {
	for _, vertex := range []core.Point{a, b, c} {
		if !vertex.IsFinite() {
			return nil, core.InvalidArgument("triangle vertex", "%v is not finite", vertex)
		}
	}

	t := &Triangle{
		A: a,
		B: b,
		C: c,
		u: b.Sub(a),
		v: c.Sub(a),
	}

	normal, err := t.u.Cross(t.v).Normalize()
	if err != nil {
		return nil, core.InvalidArgument("triangle vertices", "%v, %v, %v do not span a surface", a, b, c)
	}
	t.normal = normal

	return t, nil
}

// NewTriangleFromVertices creates a triangle from a vertex list, which must hold exactly three points
func NewTriangleFromVertices(vertices []core.Point) (*Triangle, error) {
	if len(vertices) != 3 {
		return nil, &core.DimensionError{Op: "triangle vertices", Got: len(vertices), Want: 3}
	}
	return NewTriangle(vertices[0], vertices[1], vertices[2])
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) (float64, bool) {
	w := ray.Origin().Sub(t.A)
	dv := ray.Direction().Cross(t.v)

	cosAlpha := dv.Dot(t.u)
	if cosAlpha == 0 {
		return 0, false
	}

	wu := w.Cross(t.u)
	r := dv.Dot(w) / cosAlpha
	s := wu.Dot(ray.Direction()) / cosAlpha

	if r < 0 || r > 1 || s < 0 || s > 1 || r+s > 1 {
		return 0, false
	}

	return wu.Dot(t.v) / cosAlpha, true
}

// Normal returns the triangle's normal vector
func (t *Triangle) Normal(point core.Point) core.Vector {
	return t.normal
}

// Vertices returns the three corners in construction order
func (t *Triangle) Vertices() [3]core.Point {
	return [3]core.Point{t.A, t.B, t.C}
}
