package renderer

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"go.opencensus.io/stats/view"
)

// recordingLogger collects log lines
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

// createTestScene builds an 11x11 picture of a red sphere above the center of a black background
func createTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	world, err := scene.NewWorld(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 0), 1, 100)
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	sphere, err := geometry.NewSphere(core.NewPoint(0, 6, 0), 2)
	if err != nil {
		t.Fatalf("Failed to create sphere: %v", err)
	}
	mat, err := material.NewSolid(core.NewVector(200, 0, 0), 0, 0)
	if err != nil {
		t.Fatalf("Failed to create material: %v", err)
	}
	body, err := scene.NewBody(sphere, mat)
	if err != nil {
		t.Fatalf("Failed to create body: %v", err)
	}
	if err := world.AddBodies(body); err != nil {
		t.Fatalf("Failed to add body: %v", err)
	}

	return &scene.Scene{
		Name:           "test",
		World:          world,
		Camera:         scene.CameraConfig{Width: 11, Height: 11, FieldOfView: 90},
		Pictures:       []scene.Picture{{Eye: core.NewPoint(0, 0, 10), Up: core.NewVector(0, 1, 0)}},
		RecursionDepth: 1,
	}
}

func TestRaytracer_Render(t *testing.T) {
	s := createTestScene(t)
	logger := &recordingLogger{}
	rt, err := NewSceneRaytracer(s, Config{Workers: 3, TileSize: 4}, logger)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	img, stats, err := rt.Render(context.Background(), s.Pictures[0])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if img.Bounds().Dx() != 11 || img.Bounds().Dy() != 11 {
		t.Fatalf("Expected 11x11 image, got %v", img.Bounds())
	}
	if stats.TotalPixels != 121 || stats.Tiles != 9 || stats.Workers != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	// The sphere sits above the center, so it shows up in the upper half of the image
	red := color.RGBA{R: 200, A: 255}
	black := color.RGBA{A: 255}
	if got := img.RGBAAt(5, 2); got != red {
		t.Errorf("Expected sphere color %v at (5,2), got %v", red, got)
	}
	if got := img.RGBAAt(5, 8); got != black {
		t.Errorf("Expected background %v at (5,8), got %v", black, got)
	}
	if got := img.RGBAAt(0, 10); got != black {
		t.Errorf("Expected background %v at (0,10), got %v", black, got)
	}

	if len(logger.lines) != 1 || !strings.HasPrefix(logger.lines[0], "Rendered") {
		t.Errorf("Expected one render log line, got %v", logger.lines)
	}
}

func TestRaytracer_DeterministicAcrossWorkers(t *testing.T) {
	s := createTestScene(t)

	single, err := NewSceneRaytracer(s, Config{Workers: 1, TileSize: 64}, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}
	parallel, err := NewSceneRaytracer(s, Config{Workers: 8, TileSize: 2}, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	img1, _, err := single.Render(context.Background(), s.Pictures[0])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img2, _, err := parallel.Render(context.Background(), s.Pictures[0])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for y := 0; y < 11; y++ {
		for x := 0; x < 11; x++ {
			if img1.RGBAAt(x, y) != img2.RGBAAt(x, y) {
				t.Errorf("Pixel (%d,%d) differs: %v vs %v", x, y, img1.RGBAAt(x, y), img2.RGBAAt(x, y))
			}
		}
	}
}

func TestRaytracer_Errors(t *testing.T) {
	s := createTestScene(t)
	rt, err := NewSceneRaytracer(s, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	t.Run("eye at the center", func(t *testing.T) {
		_, _, err := rt.Render(context.Background(), scene.Picture{Eye: core.NewPoint(0, 0, 0), Up: core.NewVector(0, 1, 0)})
		var invalid *core.InvalidArgumentError
		if !errors.As(err, &invalid) {
			t.Errorf("Expected InvalidArgumentError, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := rt.Render(ctx, s.Pictures[0])
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})

	t.Run("invalid scene", func(t *testing.T) {
		bad := createTestScene(t)
		bad.Camera.FieldOfView = 0
		if _, err := NewSceneRaytracer(bad, DefaultConfig(), nil); err == nil {
			t.Error("Expected error for invalid scene")
		}
	})

	t.Run("missing shader", func(t *testing.T) {
		camera := newTestCamera(t, 4, 4, 60)
		if _, err := NewRaytracer(camera, nil, DefaultConfig(), nil); err == nil {
			t.Error("Expected error for missing shader")
		}
	})
}

func TestRaytracer_Progress(t *testing.T) {
	s := createTestScene(t)
	rt, err := NewSceneRaytracer(s, Config{Workers: 1, TileSize: 4}, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	var calls []int
	rt.SetProgress(func(done, total int) {
		calls = append(calls, done)
		if total != 9 {
			t.Errorf("Expected 9 tiles, got %d", total)
		}
	})
	if _, _, err := rt.Render(context.Background(), s.Pictures[0]); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(calls) != 9 || calls[8] != 9 {
		t.Errorf("Expected progress 1..9, got %v", calls)
	}
}

func renderedPixelSum(t *testing.T) float64 {
	t.Helper()
	rows, err := view.RetrieveData(RenderedPixelsView.Name)
	if err != nil {
		t.Fatalf("Failed to retrieve metrics: %v", err)
	}
	var sum float64
	for _, row := range rows {
		if data, ok := row.Data.(*view.SumData); ok {
			sum += data.Value
		}
	}
	return sum
}

func TestRaytracer_RecordsMetrics(t *testing.T) {
	if err := RegisterMetrics(); err != nil {
		t.Fatalf("Failed to register metrics: %v", err)
	}

	s := createTestScene(t)
	rt, err := NewSceneRaytracer(s, Config{Workers: 2, TileSize: 4}, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	before := renderedPixelSum(t)
	if _, _, err := rt.Render(context.Background(), s.Pictures[0]); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	after := renderedPixelSum(t)

	if after-before != 121 {
		t.Errorf("Expected 121 more rendered pixels, got %v", after-before)
	}

	failed := scene.Picture{Eye: core.NewPoint(0, 0, 0), Up: core.NewVector(0, 1, 0)}
	if _, _, err := rt.Render(context.Background(), failed); err == nil {
		t.Fatal("Expected render from the world center to fail")
	}
	if got := renderedPixelSum(t); got != after {
		t.Errorf("Failed render added %v rendered pixels", got-after)
	}
}
