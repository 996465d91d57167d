package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/xerrors"
)

// Config contains the parallelism settings of a render
type Config struct {
	Workers  int // Number of parallel workers (0 = one per CPU)
	TileSize int // Side length of a tile in pixels
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		TileSize: 32,
	}
}

// Raytracer renders pictures of a world through a camera
type Raytracer struct {
	camera   *Camera
	shader   integrator.Integrator
	config   Config
	logger   core.Logger
	progress func(done, total int)
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(camera *Camera, shader integrator.Integrator, config Config, logger core.Logger) (*Raytracer, error) {
	if camera == nil {
		return nil, core.InvalidArgument("raytracer camera", "missing camera")
	}
	if shader == nil {
		return nil, core.InvalidArgument("raytracer shader", "missing shader")
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera: camera,
		shader: shader,
		config: config,
		logger: logger,
	}, nil
}

// NewSceneRaytracer builds the camera and Phong shader of a scene
func NewSceneRaytracer(s *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, xerrors.Errorf("while validating scene %q: %w", s.Name, err)
	}
	camera, err := NewCamera(s.World.Center, s.Camera.Width, s.Camera.Height, s.Camera.FieldOfView)
	if err != nil {
		return nil, xerrors.Errorf("while creating camera: %w", err)
	}
	shader, err := integrator.NewPhong(s.World, s.RecursionDepth)
	if err != nil {
		return nil, xerrors.Errorf("while creating shader: %w", err)
	}
	return NewRaytracer(camera, shader, config, logger)
}

// SetProgress registers a callback invoked after each finished tile
func (rt *Raytracer) SetProgress(fn func(done, total int)) {
	rt.progress = fn
}

// Render takes one picture. The returned image has its origin in the top left corner.
func (rt *Raytracer) Render(ctx context.Context, picture scene.Picture) (*image.RGBA, RenderStats, error) {
	resW, resH := rt.camera.Resolution()

	tracer := otel.Tracer("go-phong-raytracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()

	pool := NewWorkerPool(rt.config.Workers)
	pool.OnTileDone(rt.progress)
	tiles := NewTileGrid(resW, resH, rt.config.TileSize)

	span.SetAttributes(
		attribute.Int("raytracer.width", resW),
		attribute.Int("raytracer.height", resH),
		attribute.Int("raytracer.workers", pool.GetNumWorkers()),
		attribute.Int("raytracer.tiles", len(tiles)),
	)

	stats := RenderStats{
		TotalPixels: resW * resH,
		Tiles:       len(tiles),
		Workers:     pool.GetNumWorkers(),
	}

	start := time.Now()
	img, err := rt.render(ctx, pool, tiles, picture)
	stats.Elapsed = time.Since(start)
	recordRender(ctx, stats.TotalPixels, stats.Elapsed, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, stats, err
	}

	rt.logger.Printf("Rendered %dx%d picture from %v: %v\n", resW, resH, picture.Eye, stats)
	return img, stats, nil
}

func (rt *Raytracer) render(ctx context.Context, pool *WorkerPool, tiles []*Tile, picture scene.Picture) (*image.RGBA, error) {
	view, err := rt.camera.View(picture.Eye, picture.Up)
	if err != nil {
		return nil, xerrors.Errorf("while placing camera: %w", err)
	}

	resW, resH := rt.camera.Resolution()
	img := image.NewRGBA(image.Rect(0, 0, resW, resH))
	tileRenderer := NewTileRenderer(view, rt.shader)

	err = pool.Run(ctx, tiles, func(tile *Tile) error {
		return tileRenderer.RenderTile(tile, img)
	})
	if err != nil {
		return nil, xerrors.Errorf("while rendering tiles: %w", err)
	}
	return img, nil
}
