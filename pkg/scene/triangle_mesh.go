package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene of a box, a pyramid and an icosahedron
// built from triangle meshes
func NewTriangleMeshScene() *Scene {
	world := must(NewWorld(pt(0, 1, 0), vec(120, 170, 230), 0.2, 100))

	ground := solid(vec(180, 180, 180), 0.1, 5)
	red := solid(vec(200, 50, 50), 0.4, 60)
	blue := solid(vec(50, 75, 200), 0.05, 10)
	gold := solid(vec(205, 155, 50), 0.6, 120)

	bodies := []*Body{plane(pt(0, 0, 0), vec(0, 1, 0), ground)}
	bodies = append(bodies, mesh(boxMesh(1, 1, 1), geometry.MeshTransform{Rotation: vec(0, 30, 0), Offset: vec(-2, 0.5, 0)}, red)...)
	bodies = append(bodies, mesh(pyramidMesh(1.5, 2), geometry.MeshTransform{Rotation: vec(0, 45, 0), Offset: vec(0, 1, 0)}, blue)...)
	bodies = append(bodies, mesh(icosahedronMesh(0.8), geometry.MeshTransform{Rotation: vec(0, 60, 0), Offset: vec(2, 0.8, 0)}, gold)...)

	populate(world, bodies,
		light(pt(2, 6, 3), vec(255, 240, 220), 1),
		light(pt(-3, 4, 2), vec(130, 150, 180), 0.5),
	)

	return &Scene{
		Name:   "mesh",
		World:  world,
		Camera: CameraConfig{Width: 480, Height: 270, FieldOfView: 45},
		Pictures: []Picture{
			{Eye: pt(0, 2, 6), Up: vec(0, 1, 0)},
			{Eye: pt(-5, 4, 4), Up: vec(0, 1, 0)},
		},
		RecursionDepth: 3,
	}
}

// indexedMesh is a mesh centered on the origin
type indexedMesh struct {
	vertices []core.Point
	faces    [][3]int
}

// mesh turns every face of an indexed mesh into a body
func mesh(m indexedMesh, transform geometry.MeshTransform, mat material.Material) []*Body {
	triangles, _, err := geometry.NewTriangleMesh(m.vertices, m.faces, transform)
	if err != nil {
		panic(err)
	}
	bodies := make([]*Body, len(triangles))
	for i, t := range triangles {
		bodies[i] = must(NewBody(t, mat))
	}
	return bodies
}

func boxMesh(sx, sy, sz float64) indexedMesh {
	x, y, z := sx/2, sy/2, sz/2
	return indexedMesh{
		vertices: []core.Point{
			pt(-x, -y, -z), // 0: left-bottom-back
			pt(+x, -y, -z), // 1: right-bottom-back
			pt(+x, +y, -z), // 2: right-top-back
			pt(-x, +y, -z), // 3: left-top-back
			pt(-x, -y, +z), // 4: left-bottom-front
			pt(+x, -y, +z), // 5: right-bottom-front
			pt(+x, +y, +z), // 6: right-top-front
			pt(-x, +y, +z), // 7: left-top-front
		},
		faces: [][3]int{
			{0, 1, 2}, {0, 2, 3}, // back
			{4, 6, 5}, {4, 7, 6}, // front
			{0, 3, 7}, {0, 7, 4}, // left
			{1, 5, 6}, {1, 6, 2}, // right
			{0, 4, 5}, {0, 5, 1}, // bottom
			{3, 2, 6}, {3, 6, 7}, // top
		},
	}
}

func pyramidMesh(base, height float64) indexedMesh {
	b, h := base/2, height/2
	return indexedMesh{
		vertices: []core.Point{
			pt(-b, -h, -b), // 0: left-back
			pt(+b, -h, -b), // 1: right-back
			pt(+b, -h, +b), // 2: right-front
			pt(-b, -h, +b), // 3: left-front
			pt(0, +h, 0),   // 4: apex
		},
		faces: [][3]int{
			{0, 2, 1}, {0, 3, 2}, // base
			{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
		},
	}
}

func icosahedronMesh(radius float64) indexedMesh {
	phi := (1 + math.Sqrt(5)) / 2
	s := radius / math.Sqrt(1+phi*phi)
	return indexedMesh{
		vertices: []core.Point{
			pt(-s, phi*s, 0), pt(s, phi*s, 0), pt(-s, -phi*s, 0), pt(s, -phi*s, 0),
			pt(0, -s, phi*s), pt(0, s, phi*s), pt(0, -s, -phi*s), pt(0, s, -phi*s),
			pt(phi*s, 0, -s), pt(phi*s, 0, s), pt(-phi*s, 0, -s), pt(-phi*s, 0, s),
		},
		faces: [][3]int{
			// around vertex 0
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			// around vertex 3
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
}
