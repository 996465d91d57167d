package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Epsilon is the minimum accepted hit distance. It keeps a ray leaving a
// surface from hitting that same surface again.
const Epsilon = 1e-5

// NoLimit disables the maximum distance of a trace
var NoLimit = math.Inf(1)

// World holds everything a picture can be taken of
type World struct {
	Center     core.Point  // Point the camera looks at
	Background core.Vector // Color of rays that hit nothing
	Lightness  float64     // Ambient light factor
	MaxDist    float64     // Primary and reflected rays ignore hits beyond this distance

	bodies []*Body
	lights []*lights.PointLight
	index  map[*Body]struct{}
}

// NewWorld creates an empty world
func NewWorld(center core.Point, background core.Vector, lightness, maxDist float64) (*World, error) {
	if !center.IsFinite() {
		return nil, core.InvalidArgument("world center", "%v is not finite", center)
	}
	if err := material.ValidateColor("world background", background); err != nil {
		return nil, err
	}
	if math.IsNaN(lightness) || math.IsInf(lightness, 0) || lightness < 0 {
		return nil, core.InvalidArgument("world lightness", "%g must be non-negative and finite", lightness)
	}
	if math.IsNaN(maxDist) || maxDist <= 0 {
		return nil, core.InvalidArgument("world maxdist", "%g must be positive", maxDist)
	}
	return &World{
		Center:     center,
		Background: background,
		Lightness:  lightness,
		MaxDist:    maxDist,
		index:      make(map[*Body]struct{}),
	}, nil
}

// AddBodies adds bodies to the world. A body already present is not added twice.
func (w *World) AddBodies(bodies ...*Body) error {
	for _, b := range bodies {
		if b == nil {
			return core.InvalidArgument("world body", "nil body")
		}
	}
	for _, b := range bodies {
		if _, ok := w.index[b]; ok {
			continue
		}
		w.index[b] = struct{}{}
		w.bodies = append(w.bodies, b)
	}
	return nil
}

// AddLight appends a light source
func (w *World) AddLight(light *lights.PointLight) error {
	if light == nil {
		return core.InvalidArgument("world light", "nil light")
	}
	w.lights = append(w.lights, light)
	return nil
}

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Lights returns the light sources in insertion order. The slice must not be modified.
func (w *World) Lights() []*lights.PointLight {
	return w.lights
}

// Hit is the nearest intersection found by a trace
type Hit struct {
	Body  *Body
	Point core.Point
	T     float64
}

// Trace finds the nearest body along the ray closer than maxDist
func (w *World) Trace(ray core.Ray, maxDist float64) (Hit, bool) {
	return nearest(w.bodies, ray, maxDist, nil)
}

// TraceAmong finds the nearest of the candidate bodies along the ray closer than maxDist
func (w *World) TraceAmong(ray core.Ray, candidates []*Body, maxDist float64) (Hit, bool) {
	return nearest(candidates, ray, maxDist, nil)
}

// TraceExcept is Trace over all bodies but one
func (w *World) TraceExcept(ray core.Ray, excluded *Body, maxDist float64) (Hit, bool) {
	return nearest(w.bodies, ray, maxDist, excluded)
}

// nearest scans every candidate and keeps the smallest accepted parameter.
// On equal parameters the earlier candidate wins.
func nearest(candidates []*Body, ray core.Ray, maxDist float64, excluded *Body) (Hit, bool) {
	var closest *Body
	closestT := maxDist

	for _, body := range candidates {
		if body == excluded {
			continue
		}
		t, ok := body.Shape.Intersect(ray)
		if !ok || !(t >= Epsilon && t < closestT) {
			continue
		}
		closest, closestT = body, t
	}

	if closest == nil {
		return Hit{}, false
	}
	return Hit{Body: closest, Point: ray.Shoot(closestT), T: closestT}, true
}
