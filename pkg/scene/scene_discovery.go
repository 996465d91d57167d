package scene

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// builtins maps the names of the built-in scenes to their constructors
var builtins = map[string]struct {
	description string
	build       func() *Scene
}{
	"default":    {"Spheres and a triangle above a checkered ground", NewDefaultScene},
	"cornell":    {"Open Cornell box with a mirror sphere", NewCornellScene},
	"spheregrid": {"Grid of spheres with increasing shininess and smoothness", NewSphereGridScene},
	"mesh":       {"Box, pyramid and icosahedron built from triangle meshes", NewTriangleMeshScene},
}

// BuiltIn returns a fresh copy of the named built-in scene
func BuiltIn(name string) (*Scene, bool) {
	b, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return b.build(), true
}

// BuiltInNames returns the names of all built-in scenes, sorted
func BuiltInNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListJSONScenes scans a directory for JSON scene files
func ListJSONScenes(scenesDir string) ([]SceneInfo, error) {
	if _, err := os.Stat(scenesDir); err != nil {
		// No scenes directory, nothing to list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, xerrors.Errorf("while scanning scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseJSONMetadata extracts metadata from the leading "//" comments of a scene file:
//
//	// Scene: Two Spheres
//	// Description: A red and a blue sphere
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       "json:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Type:     "json",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, xerrors.Errorf("while opening scene file %q: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "//") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "//"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes of scenesDir
func ListAllScenes(scenesDir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, name := range BuiltInNames() {
		all = append(all, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: builtins[name].description,
			Type:        "builtin",
		})
	}

	jsonScenes, err := ListJSONScenes(scenesDir)
	if err != nil {
		return nil, xerrors.Errorf("while listing JSON scenes: %w", err)
	}

	return append(all, jsonScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
