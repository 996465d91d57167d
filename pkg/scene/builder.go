package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// must unwraps constructor results of the built-in scenes, whose parameters are constants
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func vec(x, y, z float64) core.Vector {
	return core.NewVector(x, y, z)
}

func pt(x, y, z float64) core.Point {
	return core.NewPoint(x, y, z)
}

func solid(color core.Vector, shininess, smoothness float64) material.Material {
	return must(material.NewSolid(color, shininess, smoothness))
}

func sphere(center core.Point, radius float64, mat material.Material) *Body {
	return must(NewBody(must(geometry.NewSphere(center, radius)), mat))
}

func plane(point core.Point, normal core.Vector, mat material.Material) *Body {
	return must(NewBody(must(geometry.NewPlane(point, normal)), mat))
}

func triangle(a, b, c core.Point, mat material.Material) *Body {
	return must(NewBody(must(geometry.NewTriangle(a, b, c)), mat))
}

func light(position core.Point, color core.Vector, lightness float64) *lights.PointLight {
	return must(lights.NewPointLight(position, color, lightness))
}

// populate adds bodies and lights to a freshly built world
func populate(w *World, bodies []*Body, ls ...*lights.PointLight) *World {
	if err := w.AddBodies(bodies...); err != nil {
		panic(err)
	}
	for _, l := range ls {
		if err := w.AddLight(l); err != nil {
			panic(err)
		}
	}
	return w
}
