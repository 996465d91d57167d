package geometry

import (
	"errors"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestMeshTransform_Apply(t *testing.T) {
	tests := []struct {
		name      string
		transform MeshTransform
		input     core.Point
		expected  core.Point
	}{
		{"identity", MeshTransform{}, core.NewPoint(1, 2, 3), core.NewPoint(1, 2, 3)},
		{"scale", MeshTransform{Scale: 2}, core.NewPoint(1, 2, 3), core.NewPoint(2, 4, 6)},
		{"offset", MeshTransform{Offset: core.NewVector(1, 0, -1)}, core.NewPoint(1, 2, 3), core.NewPoint(2, 2, 2)},
		{"rotate x", MeshTransform{Rotation: core.NewVector(90, 0, 0)}, core.NewPoint(0, 1, 0), core.NewPoint(0, 0, 1)},
		{"rotate y", MeshTransform{Rotation: core.NewVector(0, 90, 0)}, core.NewPoint(1, 0, 0), core.NewPoint(0, 0, -1)},
		{"rotate z", MeshTransform{Rotation: core.NewVector(0, 0, 90)}, core.NewPoint(1, 0, 0), core.NewPoint(0, 1, 0)},
		{"scale before offset", MeshTransform{Scale: 3, Offset: core.NewVector(0, 1, 0)}, core.NewPoint(1, 1, 1), core.NewPoint(3, 4, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform.Apply(tt.input)
			if !got.ApproxEqual(tt.expected, 1e-12) {
				t.Errorf("Apply(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewTriangleMesh(t *testing.T) {
	vertices := []core.Point{
		core.NewPoint(0, 0, 0),
		core.NewPoint(1, 0, 0),
		core.NewPoint(0, 1, 0),
		core.NewPoint(2, 0, 0),
	}
	faces := [][3]int{
		{0, 1, 2},
		{0, 1, 3}, // collinear
		{1, 3, 2},
	}

	triangles, skipped, err := NewTriangleMesh(vertices, faces, MeshTransform{Offset: core.NewVector(0, 0, 5)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(triangles) != 2 || skipped != 1 {
		t.Fatalf("Expected 2 triangles and 1 skipped face, got %d and %d", len(triangles), skipped)
	}
	if triangles[0].A != core.NewPoint(0, 0, 5) || triangles[1].B != core.NewPoint(2, 0, 5) {
		t.Errorf("Mesh vertices were not moved: %v, %v", triangles[0].A, triangles[1].B)
	}
}

func TestNewTriangleMesh_Errors(t *testing.T) {
	vertices := []core.Point{core.NewPoint(0, 0, 0), core.NewPoint(1, 0, 0), core.NewPoint(0, 1, 0)}

	tests := []struct {
		name      string
		faces     [][3]int
		transform MeshTransform
	}{
		{"index too large", [][3]int{{0, 1, 3}}, MeshTransform{}},
		{"negative index", [][3]int{{-1, 1, 2}}, MeshTransform{}},
		{"negative scale", [][3]int{{0, 1, 2}}, MeshTransform{Scale: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewTriangleMesh(vertices, tt.faces, tt.transform)
			var argErr *core.InvalidArgumentError
			if !errors.As(err, &argErr) {
				t.Errorf("Expected InvalidArgumentError, got %v", err)
			}
		})
	}
}
