package loaders

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"golang.org/x/xerrors"
)

// ImageData contains loaded image data as an array of colors with channels in [0, 255]
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vector // Row-major, top row first
}

// At returns the color of pixel (x, y)
func (d *ImageData) At(x, y int) core.Vector {
	return d.Pixels[y*d.Width+x]
}

// LoadImage loads a PNG or JPEG image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("while opening image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("while decoding image %q: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vector, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]; the high byte is the 8 bit channel
			pixels[y*width+x] = core.NewVector(float64(r>>8), float64(g>>8), float64(b>>8))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// SavePNG encodes img as PNG, creating the parent directories as needed
func SavePNG(filename string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return xerrors.Errorf("while creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return xerrors.Errorf("while creating image file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = xerrors.Errorf("while closing image file: %w", cerr)
		}
	}()

	if err := png.Encode(file, img); err != nil {
		return xerrors.Errorf("while encoding %q: %w", filename, err)
	}
	return nil
}

// MaxDifference returns the largest per-channel difference between two images of equal size
func MaxDifference(a, b *ImageData) (float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, core.InvalidArgument("image size", "%dx%d differs from %dx%d", a.Width, a.Height, b.Width, b.Height)
	}

	var maxDiff float64
	for i := range a.Pixels {
		d := a.Pixels[i].Sub(b.Pixels[i]).Map(math.Abs).Max()
		maxDiff = math.Max(maxDiff, d)
	}
	return maxDiff, nil
}
