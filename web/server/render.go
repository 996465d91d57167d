package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate reports finished tiles of a streamed render
type ProgressUpdate struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// CompleteUpdate carries the finished picture of a streamed render
type CompleteUpdate struct {
	ImageData       string  `json:"imageData"` // Base64 encoded PNG
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Tiles           int     `json:"tiles"`
	Workers         int     `json:"workers"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

// ErrorUpdate describes why a streamed render failed
type ErrorUpdate struct {
	Message string `json:"message"`
}

// handleRenderStream renders one picture and streams console output, tile
// progress and the finished image via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it so nothing writes to w after return
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sc, picture, err := s.prepareScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	consoleChan, console := s.setupConsoleLogging(sc.Name, req.Picture)
	var consoleDone sync.WaitGroup
	consoleDone.Add(1)
	go func() {
		defer consoleDone.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	img, stats, err := s.renderStreamed(ctx, sseEventChan, console, sc, picture)
	if err != nil {
		console.Errorf("Render failed: %v", err)
	}

	// The console is unused from here on, flush its remaining messages first
	close(consoleChan)
	consoleDone.Wait()
	if dropped := console.Dropped(); dropped > 0 {
		glog.Warningf("Dropped %d console lines of %s", dropped, sc.Name)
	}

	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Encoding image: %v", err))
		return
	}
	bounds := img.Bounds()
	s.sendEvent(ctx, sseEventChan, "complete", CompleteUpdate{
		ImageData:       imageData,
		Width:           bounds.Dx(),
		Height:          bounds.Dy(),
		Tiles:           stats.Tiles,
		Workers:         stats.Workers,
		ElapsedMs:       stats.Elapsed.Milliseconds(),
		PixelsPerSecond: stats.PixelsPerSecond(),
	})
}

// renderStreamed waits for a render slot, then renders while forwarding tile progress
func (s *Server) renderStreamed(ctx context.Context, sseEventChan chan SSEEvent, console *RenderConsole,
	sc *scene.Scene, picture scene.Picture) (image.Image, renderer.RenderStats, error) {
	if !s.renders.TryAcquire(1) {
		console.Warningf("All render slots are busy, waiting\n")
		if err := s.renders.Acquire(ctx, 1); err != nil {
			return nil, renderer.RenderStats{}, xerrors.Errorf("render cancelled while waiting: %w", err)
		}
	}
	defer s.renders.Release(1)

	rt, err := renderer.NewSceneRaytracer(sc, s.renderConfig(), console)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	rt.SetProgress(func(done, total int) {
		s.trySendEvent(sseEventChan, "progress", ProgressUpdate{Done: done, Total: total})
	})

	console.Printf("Rendering scene %s at %dx%d\n", sc.Name, sc.Camera.Width, sc.Camera.Height)
	start := time.Now()
	img, stats, err := rt.Render(ctx, picture)
	if err != nil {
		return nil, stats, err
	}
	glog.V(1).Infof("Streamed render of %s finished in %v", sc.Name, time.Since(start))
	return img, stats, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates the console channel and console of one render
func (s *Server) setupConsoleLogging(sceneName string, picture int) (chan ConsoleMessage, *RenderConsole) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewRenderConsole(renderID, sceneName, picture, consoleChan)
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		if ctx.Err() != nil {
			// Client disconnected, drain without sending
			continue
		}
		s.trySendEvent(sseEventChan, "console", consoleMsg)
	}
}

// sendEvent queues an event, giving up when the client is gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		glog.Errorf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// trySendEvent queues an event unless the channel is full
func (s *Server) trySendEvent(sseEventChan chan SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		glog.Errorf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	default:
		// Channel full, skip message to avoid blocking
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError logs an error and sends it to the client
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	glog.Warningf("Streamed render failed: %s", message)
	s.sendEvent(ctx, sseEventChan, "error", ErrorUpdate{Message: message})
}
