package loaders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/scene"
	"golang.org/x/xerrors"
)

// ResolveScene turns a scene reference into a scene. A reference is a path
// ending in .json, the name of a built-in scene, or the name of a JSON scene
// in scenesDir with an optional "json:" prefix as reported by scene.ListAllScenes.
func ResolveScene(name, scenesDir string) (*scene.Scene, error) {
	if strings.HasSuffix(name, ".json") {
		return LoadScene(name)
	}
	return ResolveSceneName(name, scenesDir)
}

// ResolveSceneName is ResolveScene restricted to names: file paths are
// rejected, so only built-ins and JSON scenes directly inside scenesDir load.
func ResolveSceneName(name, scenesDir string) (*scene.Scene, error) {
	if name == "" {
		return nil, xerrors.New("no scene given")
	}

	fromDir := strings.HasPrefix(name, "json:")
	if !fromDir {
		if s, ok := scene.BuiltIn(name); ok {
			return s, nil
		}
	}

	base := strings.TrimPrefix(name, "json:")
	if !validSceneName(base) {
		return nil, xerrors.Errorf("invalid scene name %q", name)
	}
	path := filepath.Join(scenesDir, base+".json")
	if _, err := os.Stat(path); err == nil {
		return LoadScene(path)
	}

	return nil, xerrors.Errorf("unknown scene %q (built-in scenes: %s)", name, strings.Join(scene.BuiltInNames(), ", "))
}

func validSceneName(base string) bool {
	if base == "" || base == "." || base == ".." {
		return false
	}
	if strings.HasSuffix(base, ".json") || filepath.IsAbs(base) {
		return false
	}
	return !strings.ContainsAny(base, `/\:`)
}
