package renderer

import (
	"fmt"
	"image"
	"time"
)

// RenderStats contains statistics about the rendering of one picture
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles the image was cut into
	Workers     int           // Number of parallel workers
	Elapsed     time.Duration // Wall time of the render
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels in %d tiles on %d workers, %v (%.0f px/s)",
		s.TotalPixels, s.Tiles, s.Workers, s.Elapsed.Round(time.Millisecond), s.PixelsPerSecond())
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
