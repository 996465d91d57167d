package server

import (
	"testing"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var _ core.Logger = (*RenderConsole)(nil)

func TestRenderConsole_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(c *RenderConsole)
		expected ConsoleMessage
	}{
		{
			name: "info",
			log:  func(c *RenderConsole) { c.Printf("Rendering scene %s at %dx%d\n", "cornell", 400, 300) },
			expected: ConsoleMessage{
				Message: "Rendering scene cornell at 400x300", Level: LevelInfo,
				RenderID: "render-1", Scene: "cornell", Picture: 2,
			},
		},
		{
			name: "warning",
			log:  func(c *RenderConsole) { c.Warningf("Skipped %d degenerate faces", 3) },
			expected: ConsoleMessage{
				Message: "Skipped 3 degenerate faces", Level: LevelWarning,
				RenderID: "render-1", Scene: "cornell", Picture: 2,
			},
		},
		{
			name: "error",
			log:  func(c *RenderConsole) { c.Errorf("Render failed: %v", "eye at center") },
			expected: ConsoleMessage{
				Message: "Render failed: eye at center", Level: LevelError,
				RenderID: "render-1", Scene: "cornell", Picture: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make(chan ConsoleMessage, 1)
			c := NewRenderConsole("render-1", "cornell", 2, out)
			tt.log(c)

			select {
			case msg := <-out:
				if time.Since(msg.Timestamp) > time.Minute {
					t.Errorf("Timestamp %v is stale", msg.Timestamp)
				}
				if diff := cmp.Diff(tt.expected, msg, cmpopts.IgnoreFields(ConsoleMessage{}, "Timestamp")); diff != "" {
					t.Errorf("Console message mismatch (-want +got):\n%s", diff)
				}
			default:
				t.Fatal("No console message was sent")
			}
		})
	}
}

func TestRenderConsole_CountsDroppedLines(t *testing.T) {
	out := make(chan ConsoleMessage, 1)
	c := NewRenderConsole("render-2", "mesh", 1, out)

	for i := 0; i < 4; i++ {
		c.Printf("Tile %d done\n", i)
	}

	if got := c.Dropped(); got != 3 {
		t.Errorf("Expected 3 dropped lines, got %d", got)
	}
	if msg := <-out; msg.Message != "Tile 0 done" {
		t.Errorf("Expected the first line to be kept, got %q", msg.Message)
	}
}

func TestRenderConsole_NilChannel(t *testing.T) {
	c := NewRenderConsole("render-3", "default", 1, nil)
	c.Printf("Only in the server log\n")
	c.Errorf("Still only in the server log\n")
	if got := c.Dropped(); got != 0 {
		t.Errorf("Expected nothing dropped without a console, got %d", got)
	}
}
