package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Checkerboard is a solid 3D checker pattern with cubic cells of edge Size
type Checkerboard struct {
	Size   float64
	Color1 core.Vector
	Color2 core.Vector
}

// NewCheckerboard creates a procedural checkerboard texture
func NewCheckerboard(size float64, color1, color2 core.Vector) (*Checkerboard, error) {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return nil, core.InvalidArgument("checkerboard size", "%g must be positive and finite", size)
	}
	if err := ValidateColor("checkerboard color", color1); err != nil {
		return nil, err
	}
	if err := ValidateColor("checkerboard color", color2); err != nil {
		return nil, err
	}
	return &Checkerboard{Size: size, Color1: color1, Color2: color2}, nil
}

// ColorAt picks a color by the parity of the rounded cell coordinates
func (c *Checkerboard) ColorAt(point core.Point) core.Vector {
	cell := point.Vector().Scale(1 / c.Size).Map(func(v float64) float64 {
		return math.Floor(math.Abs(v) + 0.5)
	})

	if int64(cell.X+cell.Y+cell.Z)%2 != 0 {
		return c.Color2
	}
	return c.Color1
}
