package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres and a triangle above a checkered ground
func NewDefaultScene() *Scene {
	world := must(NewWorld(pt(0, 1, 0), vec(25, 35, 60), 0.15, 200))

	checker := must(material.NewCheckerboard(1, vec(230, 230, 230), vec(40, 40, 40)))
	ground := must(material.New(checker, 0.2, 5))

	red := solid(vec(200, 40, 30), 0.3, 50)
	mirror := solid(vec(210, 210, 210), 0.8, 200)
	blue := solid(vec(40, 80, 200), 0.1, 10)
	orange := solid(vec(240, 150, 20), 0.15, 20)

	populate(world,
		[]*Body{
			plane(pt(0, 0, 0), vec(0, 1, 0), ground),
			sphere(pt(0, 1, 0), 1, red),
			sphere(pt(-2.2, 1, -1), 1, mirror),
			sphere(pt(2.2, 0.7, 0.5), 0.7, blue),
			triangle(pt(-1.5, 0, -3), pt(1.5, 0, -3), pt(0, 2.5, -3.5), orange),
		},
		light(pt(5, 8, 6), vec(255, 255, 255), 1),
		light(pt(-6, 5, 3), vec(120, 120, 160), 0.5),
	)

	return &Scene{
		Name:   "default",
		World:  world,
		Camera: CameraConfig{Width: 400, Height: 300, FieldOfView: 50},
		Pictures: []Picture{
			{Eye: pt(0, 2, 8), Up: vec(0, 1, 0)},
			{Eye: pt(6, 3, 6), Up: vec(0, 1, 0)},
		},
		RecursionDepth: 3,
	}
}
