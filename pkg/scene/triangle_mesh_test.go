package scene

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

func TestNewTriangleMeshScene(t *testing.T) {
	s := NewTriangleMeshScene()
	if err := s.Validate(); err != nil {
		t.Fatalf("Scene is invalid: %v", err)
	}

	// ground plane, 12 box faces, 6 pyramid faces and 20 icosahedron faces
	if got := s.GetPrimitiveCount(); got != 39 {
		t.Errorf("Expected 39 bodies, got %d", got)
	}
}

func TestIcosahedronMesh_Radius(t *testing.T) {
	m := icosahedronMesh(0.8)
	for i, v := range m.vertices {
		if r := v.Vector().Length(); math.Abs(r-0.8) > 1e-12 {
			t.Errorf("Vertex %d lies at distance %g, want 0.8", i, r)
		}
	}

	triangles, skipped, err := geometry.NewTriangleMesh(m.vertices, m.faces, geometry.MeshTransform{})
	if err != nil || skipped != 0 || len(triangles) != 20 {
		t.Errorf("Expected 20 triangles, got %d (%d skipped, err %v)", len(triangles), skipped, err)
	}
}
