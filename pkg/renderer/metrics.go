package renderer

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	renderedPixels = stats.Int64("raytracer/rendered_pixels", "Number of shaded pixels", stats.UnitDimensionless)
	renderLatency  = stats.Float64("raytracer/render_latency", "Wall time of one picture", stats.UnitMilliseconds)

	statusKey = tag.MustNewKey("status")
)

// Views of the render measures
var (
	RenderedPixelsView = &view.View{
		Name:        "raytracer/rendered_pixels",
		Description: "Total number of shaded pixels",
		Measure:     renderedPixels,
		Aggregation: view.Sum(),
	}
	RenderCountView = &view.View{
		Name:        "raytracer/render_count",
		Description: "Number of rendered pictures by outcome",
		Measure:     renderLatency,
		TagKeys:     []tag.Key{statusKey},
		Aggregation: view.Count(),
	}
	RenderLatencyView = &view.View{
		Name:        "raytracer/render_latency",
		Description: "Distribution of picture render times",
		Measure:     renderLatency,
		Aggregation: view.Distribution(10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000),
	}
)

// RegisterMetrics registers the render views with opencensus. Without it the
// measurements are dropped.
func RegisterMetrics() error {
	return view.Register(RenderedPixelsView, RenderCountView, RenderLatencyView)
}

func recordRender(ctx context.Context, pixels int, elapsed time.Duration, err error) {
	status := "ok"
	measurements := []stats.Measurement{renderLatency.M(float64(elapsed) / float64(time.Millisecond))}
	if err != nil {
		status = "error"
	} else {
		measurements = append(measurements, renderedPixels.M(int64(pixels)))
	}
	stats.RecordWithOptions(
		ctx,
		stats.WithTags(tag.Insert(statusKey, status)),
		stats.WithMeasurements(measurements...),
	)
}
