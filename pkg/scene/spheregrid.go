package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB channels in [0, 255]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vector {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVector(r, g, blue).Map(func(v float64) float64 {
		return material.MaxChannel * math.Max(0, math.Min(1, v))
	})
}

// NewSphereGridScene creates a grid of spheres whose shininess grows along x
// and whose smoothness grows along z
func NewSphereGridScene() *Scene {
	const gridSize = 6
	const spacing = 1.5

	world := must(NewWorld(pt(3.75, 0.5, 3.75), vec(200, 215, 235), 0.2, 500))

	checker := must(material.NewCheckerboard(2, vec(90, 90, 90), vec(60, 60, 60)))
	bodies := []*Body{
		plane(pt(0, 0, 0), vec(0, 1, 0), must(material.New(checker, 0.1, 2))),
	}

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i*gridSize+j) * 360.0 / (gridSize * gridSize)
			shininess := float64(i) / (gridSize - 1)
			smoothness := math.Pow(2, float64(j+1))

			mat := solid(oklchToRGB(0.7, 0.15, hue), shininess, smoothness)
			bodies = append(bodies, sphere(pt(float64(i)*spacing, 0.5, float64(j)*spacing), 0.5, mat))
		}
	}

	populate(world, bodies,
		light(pt(-5, 12, 10), vec(255, 255, 255), 1),
	)

	return &Scene{
		Name:           "spheregrid",
		World:          world,
		Camera:         CameraConfig{Width: 640, Height: 360, FieldOfView: 45},
		Pictures:       []Picture{{Eye: pt(3.75, 7, 16), Up: vec(0, 1, 0)}},
		RecursionDepth: 2,
	}
}
