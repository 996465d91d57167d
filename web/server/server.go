package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"runtime"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/golang/glog"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"
)

// Config holds the web server settings
type Config struct {
	Port          int    // Port to listen on
	ScenesDir     string // Directory searched for JSON scenes
	MaxConcurrent int64  // Renders running at the same time, further requests wait
	Workers       int    // Worker goroutines per render
}

// Server handles web requests for the raytracer
type Server struct {
	config  Config
	renders *semaphore.Weighted
	metrics *MetricsWrapper
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 1
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	s := &Server{
		config:  config,
		renders: semaphore.NewWeighted(config.MaxConcurrent),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	s.metrics = NewMetricsWrapper(mux)

	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string  `json:"scene"`   // Scene reference, see loaders.ResolveSceneName
	Picture int     `json:"picture"` // 1-based picture index
	Width   int     `json:"width"`   // Overrides the scene resolution if positive
	Height  int     `json:"height"`  // Overrides the scene resolution if positive
	FOV     float64 `json:"fov"`     // Overrides the field of view if positive
	Depth   int     `json:"depth"`   // Overrides the recursion depth if not negative
}

// Handler returns the request handler of the server
func (s *Server) Handler() http.Handler {
	return s.metrics
}

// RegisterMetrics registers the request metrics of the server
func (s *Server) RegisterMetrics() error {
	return s.metrics.RegisterMetrics()
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	infos, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		glog.Errorf("Listing scenes: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, infos)
}

// handleRender renders one picture and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	sc, picture, err := s.prepareScene(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := s.renders.Acquire(ctx, 1); err != nil {
		http.Error(w, "render cancelled while waiting", http.StatusServiceUnavailable)
		return
	}
	defer s.renders.Release(1)

	rt, err := renderer.NewSceneRaytracer(sc, s.renderConfig(), core.GlogLogger{Level: 1})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	img, _, err := rt.Render(ctx, picture)
	if err != nil {
		glog.Errorf("Rendering scene %q: %v", sc.Name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		glog.Warningf("Writing PNG of scene %q: %v", sc.Name, err)
	}
}

// parseRenderRequest parses and validates the query parameters of a render request
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		return nil, xerrors.New("missing scene")
	}

	var err error
	if req.Picture, err = parseIntParam(query, "picture", 1, 1, 1000); err != nil {
		return nil, err
	}
	if req.Width, err = parseIntParam(query, "width", 0, 1, 4096); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 4096); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(query, "fov", 0, 1, 179); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", -1, 0, 64); err != nil {
		return nil, err
	}

	return req, nil
}

// prepareScene resolves the requested scene, applies the overrides and picks the picture
func (s *Server) prepareScene(req *RenderRequest) (*scene.Scene, scene.Picture, error) {
	sc, err := loaders.ResolveSceneName(req.Scene, s.config.ScenesDir)
	if err != nil {
		return nil, scene.Picture{}, err
	}
	if req.Picture > len(sc.Pictures) {
		return nil, scene.Picture{}, xerrors.Errorf("scene %q has %d pictures, got picture %d", sc.Name, len(sc.Pictures), req.Picture)
	}

	if req.Width > 0 {
		sc.Camera.Width = req.Width
	}
	if req.Height > 0 {
		sc.Camera.Height = req.Height
	}
	if req.FOV > 0 {
		sc.Camera.FieldOfView = req.FOV
	}
	if req.Depth >= 0 {
		sc.RecursionDepth = req.Depth
	}

	return sc, sc.Pictures[req.Picture-1], nil
}

func (s *Server) renderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.Workers = s.config.Workers
	return config
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, xerrors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, xerrors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, xerrors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, xerrors.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("Writing JSON response: %v", err)
	}
}
