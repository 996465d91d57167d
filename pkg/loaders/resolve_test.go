package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveScene(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(minimalScene), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		ref       string
		wantName  string
		expectErr bool
	}{
		{"built-in", "cornell", "cornell", false},
		{"json by name", "tiny", "tiny", false},
		{"json by id", "json:tiny", "tiny", false},
		{"json by path", filepath.Join(dir, "tiny.json"), "tiny", false},
		{"json prefix skips built-ins", "json:cornell", "", true},
		{"unknown", "nonexistent", "", true},
		{"path traversal", "json:../tiny", "", true},
		{"empty", "", "", true},
		{"empty json id", "json:", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ResolveScene(tt.ref, dir)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ResolveScene(%q) succeeded, want error", tt.ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveScene(%q): %v", tt.ref, err)
			}
			if s.Name != tt.wantName {
				t.Errorf("ResolveScene(%q).Name = %q, want %q", tt.ref, s.Name, tt.wantName)
			}
		})
	}
}

func TestResolveSceneName(t *testing.T) {
	dir := t.TempDir()
	scenesDir := filepath.Join(dir, "scenes")
	if err := os.Mkdir(scenesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scenesDir, "tiny.json"), []byte(minimalScene), 0644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(dir, "outside.json")
	if err := os.WriteFile(outside, []byte(minimalScene), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		ref       string
		expectErr bool
	}{
		{"built-in", "cornell", false},
		{"json by name", "tiny", false},
		{"json by id", "json:tiny", false},
		{"absolute path", outside, true},
		{"relative path", "../outside.json", true},
		{"file name with extension", "tiny.json", true},
		{"traversal", "json:../outside", true},
		{"backslash", `json:..\outside`, true},
		{"dot dot", "json:..", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSceneName(tt.ref, scenesDir)
			if tt.expectErr && err == nil {
				t.Errorf("ResolveSceneName(%q) succeeded, want error", tt.ref)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ResolveSceneName(%q): %v", tt.ref, err)
			}
		})
	}
}
