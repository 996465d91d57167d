package loaders

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// TestSaveAndLoadImage writes a PNG into a fresh directory and reads it back
func TestSaveAndLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "dir", "test.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // red
	img.Set(0, 1, color.RGBA{R: 0, G: 128, B: 0, A: 255})     // green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 7, A: 255})       // dark blue

	if err := SavePNG(testFile, img); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}

	tests := []struct {
		x, y     int
		expected core.Vector
	}{
		{0, 0, core.NewVector(255, 255, 255)},
		{1, 0, core.NewVector(255, 0, 0)},
		{0, 1, core.NewVector(0, 128, 0)},
		{1, 1, core.NewVector(0, 0, 7)},
	}
	for _, tt := range tests {
		if got := imageData.At(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for missing file")
	}

	notAnImage := filepath.Join(t.TempDir(), "text.png")
	if err := os.WriteFile(notAnImage, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadImage(notAnImage); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestMaxDifference(t *testing.T) {
	a := &ImageData{Width: 2, Height: 1, Pixels: []core.Vector{
		core.NewVector(10, 20, 30), core.NewVector(0, 0, 0),
	}}
	b := &ImageData{Width: 2, Height: 1, Pixels: []core.Vector{
		core.NewVector(12, 20, 30), core.NewVector(0, 0, 5),
	}}

	diff, err := MaxDifference(a, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff != 5 {
		t.Errorf("Expected difference 5, got %v", diff)
	}

	same, err := MaxDifference(a, a)
	if err != nil || same != 0 {
		t.Errorf("Expected no difference to itself, got %v (%v)", same, err)
	}

	c := &ImageData{Width: 1, Height: 2, Pixels: a.Pixels}
	if _, err := MaxDifference(a, c); err == nil {
		t.Error("Expected error for mismatched sizes")
	}
}
