package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func newTestWorld(t *testing.T) (*World, []*Body) {
	t.Helper()
	world, err := NewWorld(core.NewPoint(1, 0, 0), core.NewVector(0, 0, 0), 0.5, NoLimit)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	gray := solid(vec(128, 128, 128), 0, 1)
	bodies := []*Body{
		sphere(pt(0, 10, 0), 1, gray),
		sphere(pt(5, 0, 0), 1, gray),
		sphere(pt(2, 0, 0), 1, gray),
	}
	if err := world.AddBodies(bodies...); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return world, bodies
}

func newRay(t *testing.T, origin core.Point, direction core.Vector) core.Ray {
	t.Helper()
	ray, err := core.NewRay(origin, direction)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return ray
}

func TestWorld_Trace(t *testing.T) {
	world, bodies := newTestWorld(t)

	tests := []struct {
		name          string
		direction     core.Vector
		maxDist       float64
		expectedBody  *Body
		expectedPoint core.Point
	}{
		{"nearest of two in line", vec(1, 0, 0), NoLimit, bodies[2], pt(1, 0, 0)},
		{"single body", vec(0, 1, 0), NoLimit, bodies[0], pt(0, 9, 0)},
		{"beyond maxdist", vec(0, 1, 0), 5, nil, core.Point{}},
		{"maxdist is exclusive", vec(0, 1, 0), 9, nil, core.Point{}},
		{"miss", vec(-1, 0, 0), NoLimit, nil, core.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := world.Trace(newRay(t, pt(0, 0, 0), tt.direction), tt.maxDist)

			if tt.expectedBody == nil {
				if ok {
					t.Errorf("Expected no hit, got body at %v", hit.Point)
				}
				return
			}
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if hit.Body != tt.expectedBody {
				t.Errorf("Expected body %p, got %p", tt.expectedBody, hit.Body)
			}
			if !hit.Point.ApproxEqual(tt.expectedPoint, 1e-9) {
				t.Errorf("Expected hit point %v, got %v", tt.expectedPoint, hit.Point)
			}
		})
	}
}

func TestWorld_Trace_EpsilonBias(t *testing.T) {
	world, err := NewWorld(pt(0, 0, 0), vec(0, 0, 0), 0, NoLimit)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	wall := plane(pt(0, 0, 0), vec(1, 0, 0), solid(vec(1, 1, 1), 0, 1))
	if err := world.AddBodies(wall); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// A ray leaving the wall must not hit it again at t=0
	if hit, ok := world.Trace(newRay(t, pt(0, 0, 0), vec(1, 1, 0)), NoLimit); ok {
		t.Errorf("Expected no self-intersection, got hit at t=%g", hit.T)
	}

	// Just beyond the bias the wall is reported
	if _, ok := world.Trace(newRay(t, pt(-2*Epsilon, 0, 0), vec(1, 0, 0)), NoLimit); !ok {
		t.Error("Expected hit just beyond the epsilon bias")
	}
}

func TestWorld_Trace_NegativeRootIgnored(t *testing.T) {
	world, bodies := newTestWorld(t)

	// Starting inside the sphere at (2,0,0) only the far root lies ahead, which
	// the sphere does not report, so the next sphere is found
	hit, ok := world.Trace(newRay(t, pt(2, 0, 0), vec(1, 0, 0)), NoLimit)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Body != bodies[1] {
		t.Errorf("Expected sphere at (5,0,0), got %v", hit.Body.Shape)
	}
}

func TestWorld_Trace_TieBreakInsertionOrder(t *testing.T) {
	world, err := NewWorld(pt(0, 0, 0), vec(0, 0, 0), 0, NoLimit)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	first := sphere(pt(3, 0, 0), 1, solid(vec(255, 0, 0), 0, 1))
	second := sphere(pt(3, 0, 0), 1, solid(vec(0, 255, 0), 0, 1))
	if err := world.AddBodies(first, second); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		hit, ok := world.Trace(newRay(t, pt(0, 0, 0), vec(1, 0, 0)), NoLimit)
		if !ok || hit.Body != first {
			t.Fatalf("Expected the first inserted body on equal distance, got %+v", hit)
		}
	}
}

func TestWorld_TraceExceptAndAmong(t *testing.T) {
	world, bodies := newTestWorld(t)
	ray := newRay(t, pt(0, 0, 0), vec(1, 0, 0))

	hit, ok := world.TraceExcept(ray, bodies[2], NoLimit)
	if !ok || hit.Body != bodies[1] {
		t.Errorf("Expected sphere at (5,0,0) when excluding the nearest, got %+v", hit)
	}
	if !hit.Point.ApproxEqual(pt(4, 0, 0), 1e-9) {
		t.Errorf("Expected hit point (4,0,0), got %v", hit.Point)
	}

	if _, ok := world.TraceAmong(ray, []*Body{bodies[0]}, NoLimit); ok {
		t.Error("Expected no hit among candidates off the ray")
	}
	if _, ok := world.TraceAmong(ray, nil, NoLimit); ok {
		t.Error("Expected no hit among no candidates")
	}
}

func TestWorld_AddBodies_Identity(t *testing.T) {
	world, bodies := newTestWorld(t)

	if err := world.AddBodies(bodies[0], bodies[0]); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := len(world.Bodies()); got != 3 {
		t.Errorf("Expected 3 unique bodies, got %d", got)
	}

	// An equal but distinct body is a different body
	twin := sphere(pt(0, 10, 0), 1, bodies[0].Material)
	if err := world.AddBodies(twin); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := len(world.Bodies()); got != 4 {
		t.Errorf("Expected 4 bodies, got %d", got)
	}

	var invalid *core.InvalidArgumentError
	if err := world.AddBodies(nil); !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidArgumentError for nil body, got %v", err)
	}
}

func TestNewWorld_Validation(t *testing.T) {
	tests := []struct {
		name       string
		background core.Vector
		lightness  float64
		maxDist    float64
	}{
		{"background out of range", vec(0, 0, 300), 0.5, 10},
		{"negative lightness", vec(0, 0, 0), -0.5, 10},
		{"zero maxdist", vec(0, 0, 0), 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(pt(0, 0, 0), tt.background, tt.lightness, tt.maxDist)

			var invalid *core.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Errorf("Expected InvalidArgumentError, got %v", err)
			}
		})
	}
}

func TestBody_ColorAt(t *testing.T) {
	checker, err := material.NewCheckerboard(1, vec(255, 255, 255), vec(0, 0, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	mat, err := material.New(checker, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	shape, err := geometry.NewPlane(pt(0, 0, 0), vec(0, 1, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	body, err := NewBody(shape, mat)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := body.ColorAt(pt(0, 0, 0)); got != vec(255, 255, 255) {
		t.Errorf("Expected white at origin, got %v", got)
	}
	if got := body.ColorAt(pt(1, 0, 0)); got != vec(0, 0, 0) {
		t.Errorf("Expected black one cell over, got %v", got)
	}
	if got := body.Normal(pt(5, 0, 5)); got != vec(0, 1, 0) {
		t.Errorf("Expected plane normal, got %v", got)
	}
}
