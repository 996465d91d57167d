package loaders

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/golang/glog"
	"github.com/sauerbraten/jsonfile"
	"golang.org/x/xerrors"
)

// sceneFile mirrors the layout of a JSON scene description
type sceneFile struct {
	World    worldEntry     `json:"world"`
	Camera   cameraEntry    `json:"camera"`
	Pictures []pictureEntry `json:"pictures"`
	RecDepth int            `json:"recdepth"`
	Bodies   []bodyEntry    `json:"bodies"`
	Lights   []lightEntry   `json:"lights"`
}

type worldEntry struct {
	Center     []float64 `json:"center"`
	Lightness  float64   `json:"lightness"`
	Background string    `json:"background"`
	MaxDist    *float64  `json:"maxdist"` // Unlimited when absent
}

type cameraEntry struct {
	Resolution  []int   `json:"resolution"`
	AngleOfView float64 `json:"angleofview"` // Degrees
}

type pictureEntry struct {
	Eye []float64 `json:"eye"`
	Up  []float64 `json:"up"`
}

type bodyEntry struct {
	Type       string        `json:"type"`
	Position   []float64     `json:"position"` // sphere
	Radius     float64       `json:"radius"`   // sphere
	Point      []float64     `json:"point"`    // plane
	Norm       []float64     `json:"norm"`     // plane
	Vertices   [][]float64   `json:"vertices"` // triangle
	File       string        `json:"file"`     // mesh, PLY file relative to the scene file
	Scale      float64       `json:"scale"`    // mesh
	Rotation   []float64     `json:"rotation"` // mesh, degrees around X, Y and Z
	Offset     []float64     `json:"offset"`   // mesh
	Color      string        `json:"color"`
	Texture    *textureEntry `json:"texture"`
	Shininess  float64       `json:"shininess"`
	Smoothness float64       `json:"smoothness"`
}

type textureEntry struct {
	Type   string   `json:"type"`
	Size   float64  `json:"size"`
	Colors []string `json:"colors"`
}

type lightEntry struct {
	Position  []float64 `json:"position"`
	Color     string    `json:"color"`
	Lightness float64   `json:"lightness"`
}

// LoadScene reads a JSON scene description. Lines starting with // are comments.
// The scene is named after the file.
func LoadScene(path string) (*scene.Scene, error) {
	var raw sceneFile
	if err := jsonfile.ParseFile(path, &raw); err != nil {
		return nil, xerrors.Errorf("while parsing scene file %q: %w", path, err)
	}

	s, err := raw.build(filepath.Dir(path))
	if err != nil {
		return nil, xerrors.Errorf("while loading scene file %q: %w", path, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if err := s.Validate(); err != nil {
		return nil, xerrors.Errorf("while validating scene file %q: %w", path, err)
	}
	return s, nil
}

func (raw *sceneFile) build(dir string) (*scene.Scene, error) {
	world, err := raw.World.build()
	if err != nil {
		return nil, xerrors.Errorf("while loading world: %w", err)
	}

	for i, b := range raw.Bodies {
		var bodies []*scene.Body
		if b.Type == "mesh" {
			bodies, err = b.buildMesh(dir)
		} else {
			var body *scene.Body
			body, err = b.build()
			bodies = []*scene.Body{body}
		}
		if err != nil {
			return nil, xerrors.Errorf("while loading body %d: %w", i, err)
		}
		if err := world.AddBodies(bodies...); err != nil {
			return nil, xerrors.Errorf("while adding body %d: %w", i, err)
		}
	}

	for i, l := range raw.Lights {
		light, err := l.build()
		if err != nil {
			return nil, xerrors.Errorf("while loading light %d: %w", i, err)
		}
		if err := world.AddLight(light); err != nil {
			return nil, xerrors.Errorf("while adding light %d: %w", i, err)
		}
	}

	if len(raw.Camera.Resolution) != 2 {
		return nil, core.InvalidArgument("camera resolution", "got %d values, want width and height", len(raw.Camera.Resolution))
	}

	s := &scene.Scene{
		World: world,
		Camera: scene.CameraConfig{
			Width:       raw.Camera.Resolution[0],
			Height:      raw.Camera.Resolution[1],
			FieldOfView: raw.Camera.AngleOfView,
		},
		RecursionDepth: raw.RecDepth,
	}

	for i, p := range raw.Pictures {
		eye, err := core.PointFromSlice(p.Eye)
		if err != nil {
			return nil, xerrors.Errorf("while loading eye of picture %d: %w", i, err)
		}
		up, err := core.VectorFromSlice(p.Up)
		if err != nil {
			return nil, xerrors.Errorf("while loading up vector of picture %d: %w", i, err)
		}
		s.Pictures = append(s.Pictures, scene.Picture{Eye: eye, Up: up})
	}

	return s, nil
}

func (w *worldEntry) build() (*scene.World, error) {
	center, err := core.PointFromSlice(w.Center)
	if err != nil {
		return nil, xerrors.Errorf("while reading center: %w", err)
	}
	background, err := ParseHexColor(w.Background)
	if err != nil {
		return nil, xerrors.Errorf("while reading background: %w", err)
	}
	maxDist := scene.NoLimit
	if w.MaxDist != nil {
		maxDist = *w.MaxDist
	}
	return scene.NewWorld(center, background, w.Lightness, maxDist)
}

func (b *bodyEntry) build() (*scene.Body, error) {
	shape, err := b.shape()
	if err != nil {
		return nil, err
	}
	mat, err := b.material()
	if err != nil {
		return nil, err
	}
	return scene.NewBody(shape, mat)
}

// buildMesh loads a PLY mesh as one triangle body per face, all sharing one material
func (b *bodyEntry) buildMesh(dir string) ([]*scene.Body, error) {
	if b.File == "" {
		return nil, core.InvalidArgument("mesh file", "missing file")
	}
	path := b.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	transform := geometry.MeshTransform{Scale: b.Scale}
	var err error
	if b.Rotation != nil {
		if transform.Rotation, err = core.VectorFromSlice(b.Rotation); err != nil {
			return nil, xerrors.Errorf("while reading mesh rotation: %w", err)
		}
	}
	if b.Offset != nil {
		if transform.Offset, err = core.VectorFromSlice(b.Offset); err != nil {
			return nil, xerrors.Errorf("while reading mesh offset: %w", err)
		}
	}

	mat, err := b.material()
	if err != nil {
		return nil, err
	}
	data, err := LoadPLY(path)
	if err != nil {
		return nil, err
	}
	triangles, skipped, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, transform)
	if err != nil {
		return nil, xerrors.Errorf("while building mesh %q: %w", b.File, err)
	}
	if skipped > 0 {
		glog.Warningf("Skipped %d degenerate faces of mesh %q", skipped, b.File)
	}

	bodies := make([]*scene.Body, len(triangles))
	for i, triangle := range triangles {
		if bodies[i], err = scene.NewBody(triangle, mat); err != nil {
			return nil, err
		}
	}
	return bodies, nil
}

func (b *bodyEntry) shape() (geometry.Shape, error) {
	switch b.Type {
	case "sphere":
		center, err := core.PointFromSlice(b.Position)
		if err != nil {
			return nil, xerrors.Errorf("while reading sphere position: %w", err)
		}
		return geometry.NewSphere(center, b.Radius)
	case "plane":
		point, err := core.PointFromSlice(b.Point)
		if err != nil {
			return nil, xerrors.Errorf("while reading plane point: %w", err)
		}
		normal, err := core.VectorFromSlice(b.Norm)
		if err != nil {
			return nil, xerrors.Errorf("while reading plane normal: %w", err)
		}
		return geometry.NewPlane(point, normal)
	case "triangle":
		vertices := make([]core.Point, len(b.Vertices))
		for i, v := range b.Vertices {
			p, err := core.PointFromSlice(v)
			if err != nil {
				return nil, xerrors.Errorf("while reading triangle vertex %d: %w", i, err)
			}
			vertices[i] = p
		}
		return geometry.NewTriangleFromVertices(vertices)
	default:
		return nil, core.InvalidArgument("body type", "unknown type %q", b.Type)
	}
}

func (b *bodyEntry) material() (material.Material, error) {
	if b.Texture == nil {
		color, err := ParseHexColor(b.Color)
		if err != nil {
			return material.Material{}, xerrors.Errorf("while reading color: %w", err)
		}
		return material.NewSolid(color, b.Shininess, b.Smoothness)
	}

	texture, err := b.Texture.build()
	if err != nil {
		return material.Material{}, xerrors.Errorf("while reading texture: %w", err)
	}
	return material.New(texture, b.Shininess, b.Smoothness)
}

func (t *textureEntry) build() (material.ColorSource, error) {
	switch t.Type {
	case "checkerboard":
		if len(t.Colors) != 2 {
			return nil, core.InvalidArgument("checkerboard colors", "got %d colors, want 2", len(t.Colors))
		}
		color1, err := ParseHexColor(t.Colors[0])
		if err != nil {
			return nil, err
		}
		color2, err := ParseHexColor(t.Colors[1])
		if err != nil {
			return nil, err
		}
		return material.NewCheckerboard(t.Size, color1, color2)
	default:
		return nil, core.InvalidArgument("texture type", "unknown type %q", t.Type)
	}
}

func (l *lightEntry) build() (*lights.PointLight, error) {
	position, err := core.PointFromSlice(l.Position)
	if err != nil {
		return nil, xerrors.Errorf("while reading position: %w", err)
	}
	color, err := ParseHexColor(l.Color)
	if err != nil {
		return nil, xerrors.Errorf("while reading color: %w", err)
	}
	return lights.NewPointLight(position, color, l.Lightness)
}

// ParseHexColor converts a "rrggbb" string (optionally prefixed with #) to a color with channels in [0, 255]
func ParseHexColor(s string) (core.Vector, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return core.Vector{}, core.InvalidArgument("hex color", "%q is not of the form rrggbb", s)
	}

	var channels [3]float64
	for i := range channels {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return core.Vector{}, core.InvalidArgument("hex color", "%q is not of the form rrggbb", s)
		}
		channels[i] = float64(v)
	}
	return core.NewVector(channels[0], channels[1], channels[2]), nil
}
