package server

import (
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	pathKey   = tag.MustNewKey("path")
	statusKey = tag.MustNewKey("status")
)

// unmatchedRoute tags requests no route of the mux serves
const unmatchedRoute = "other"

// MetricsWrapper counts served requests by route and status code
type MetricsWrapper struct {
	requestCount     *stats.Int64Measure
	requestCountView *view.View

	inner *http.ServeMux
}

// NewMetricsWrapper wraps inner with request counting
func NewMetricsWrapper(inner *http.ServeMux) *MetricsWrapper {
	m := &MetricsWrapper{inner: inner}

	m.requestCount = stats.Int64("raytracer/http_requests", "", stats.UnitDimensionless)
	m.requestCountView = &view.View{
		Name:        "raytracer/http_requests",
		Description: "Counter of requests that have been handled",
		TagKeys:     []tag.Key{pathKey, statusKey},
		Measure:     m.requestCount,
		Aggregation: view.Count(),
	}

	return m
}

// RegisterMetrics registers the request count view with opencensus
func (m *MetricsWrapper) RegisterMetrics() error {
	return view.Register(m.requestCountView)
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the wrapper
func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (m *MetricsWrapper) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	m.inner.ServeHTTP(rec, r)

	glog.V(1).Infof("Served path=%q status=%d useragent=%q", r.URL.Path, rec.status, r.Header["User-Agent"])

	stats.RecordWithOptions(
		r.Context(),
		stats.WithTags(
			tag.Insert(pathKey, m.route(r)),
			tag.Insert(statusKey, strconv.Itoa(rec.status)),
		),
		stats.WithMeasurements(m.requestCount.M(1)))
}

// route returns the mux pattern serving r, keeping the path tag bounded
func (m *MetricsWrapper) route(r *http.Request) string {
	if _, pattern := m.inner.Handler(r); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
