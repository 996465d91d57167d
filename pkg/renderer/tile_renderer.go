package renderer

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"golang.org/x/xerrors"
)

// Tile is a rectangular region of the output image
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds in image coordinates
}

// NewTileGrid cuts a width x height image into tiles of at most tileSize pixels per side
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}

// TileRenderer shades the pixels of individual tiles
type TileRenderer struct {
	view   *View
	shader integrator.Integrator
}

// NewTileRenderer creates a new tile renderer for one camera position
func NewTileRenderer(view *View, shader integrator.Integrator) *TileRenderer {
	return &TileRenderer{view: view, shader: shader}
}

// RenderTile shades every pixel of the tile into img. Image row 0 is the top
// of the picture while camera row 0 is the bottom. Tiles never overlap, so
// several tiles of the same image may be rendered concurrently.
func (tr *TileRenderer) RenderTile(tile *Tile, img *image.RGBA) error {
	for iy := tile.Bounds.Min.Y; iy < tile.Bounds.Max.Y; iy++ {
		y := tr.view.resH - 1 - iy
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			ray, err := tr.view.RayAt(x, y)
			if err != nil {
				return xerrors.Errorf("while building ray for pixel (%d, %d): %w", x, y, err)
			}
			img.SetRGBA(x, iy, tr.shader.Shade(ray).Color())
		}
	}
	return nil
}
