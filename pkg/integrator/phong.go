package integrator

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Phong shades view rays with ambient, diffuse and specular light plus recursive mirror reflection
type Phong struct {
	world *scene.World
	depth int
}

// NewPhong creates a Phong shader. depth is how often a view ray may bounce between reflective bodies.
func NewPhong(world *scene.World, depth int) (*Phong, error) {
	if world == nil {
		return nil, core.InvalidArgument("phong world", "missing world")
	}
	if depth < 0 {
		return nil, core.InvalidArgument("recursion depth", "%d is negative", depth)
	}
	return &Phong{world: world, depth: depth}, nil
}

// Depth returns the configured recursion depth
func (p *Phong) Depth() int {
	return p.depth
}

// Shade colorizes the ray at full depth and converts the result to a displayable color.
// Colors brighter than MaxChannel are scaled down uniformly, keeping their hue.
func (p *Phong) Shade(ray core.Ray) RGB {
	c := p.Colorize(ray, p.depth)
	if m := c.Max(); m > material.MaxChannel {
		factor := m / material.MaxChannel
		c = c.Map(func(x float64) float64 { return x / factor })
	}
	return RGB{R: int(c.X), G: int(c.Y), B: int(c.Z)}
}

// Colorize returns the unclamped color seen along the ray. d is the number of
// reflection bounces left; at zero no reflected ray is traced.
func (p *Phong) Colorize(ray core.Ray, d int) core.Vector {
	hit, ok := p.world.Trace(ray, p.world.MaxDist)
	if !ok {
		return p.world.Background
	}

	body := hit.Body
	mat := body.Material
	normal := body.Normal(hit.Point)
	baseColor := body.ColorAt(hit.Point)

	// Ambient
	color := baseColor.Scale(p.world.Lightness)

	for _, light := range p.world.Lights() {
		lightVec, err := light.DirectionFrom(hit.Point)
		if err != nil {
			// Hit point coincides with the light
			continue
		}
		shadowRay, err := core.NewRay(hit.Point, lightVec)
		if err != nil {
			continue
		}
		if _, shadowed := p.world.TraceExcept(shadowRay, body, scene.NoLimit); shadowed {
			continue
		}

		// The light is tinted by the surface albedo for the diffuse term only
		lightColor := baseColor.Mul(light.Color.Map(func(x float64) float64 { return x / material.MaxChannel }))

		cosPhi := normal.Dot(lightVec)
		color = color.Add(lightColor.Scale(math.Max(0, (1-mat.Shininess)*cosPhi)))

		cosTheta := -ray.Direction().Dot(lightVec.Mirror(normal))
		if cosTheta > 0 {
			specular := (mat.Smoothness + 2) / (2 * math.Pi) * math.Pow(cosTheta, mat.Smoothness) * mat.Shininess
			color = color.Add(light.Color.Scale(specular))
		}
	}

	if d > 0 && mat.Shininess > 0 {
		reflected, err := core.NewRay(hit.Point, ray.Direction().Mirror(normal).Neg())
		if err == nil {
			color = color.Add(p.Colorize(reflected, d-1).Scale(mat.Shininess))
		}
	}

	return color
}
