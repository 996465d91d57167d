package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
	"golang.org/x/xerrors"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Color        [3]int                 `json:"color"` // Shaded pixel color
	BodyIndex    int                    `json:"bodyIndex"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// inspectPixel casts the view ray of an image pixel and describes the first body it hits.
// Image coordinates have their origin in the top left corner.
func inspectPixel(sc *scene.Scene, picture scene.Picture, pixelX, pixelY int) (InspectResponse, error) {
	camera, err := renderer.NewCamera(sc.World.Center, sc.Camera.Width, sc.Camera.Height, sc.Camera.FieldOfView)
	if err != nil {
		return InspectResponse{}, err
	}
	view, err := camera.View(picture.Eye, picture.Up)
	if err != nil {
		return InspectResponse{}, err
	}
	_, resH := camera.Resolution()
	ray, err := view.RayAt(pixelX, resH-1-pixelY)
	if err != nil {
		return InspectResponse{}, err
	}

	shader, err := integrator.NewPhong(sc.World, sc.RecursionDepth)
	if err != nil {
		return InspectResponse{}, err
	}
	shade := shader.Shade(ray)
	resp := InspectResponse{
		Color:     [3]int{shade.R, shade.G, shade.B},
		BodyIndex: -1,
	}

	hit, ok := sc.World.Trace(ray, sc.World.MaxDist)
	if !ok {
		return resp, nil
	}

	resp.Hit = true
	for i, b := range sc.World.Bodies() {
		if b == hit.Body {
			resp.BodyIndex = i
			break
		}
	}
	normal := hit.Body.Normal(hit.Point)
	resp.Point = [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z}
	resp.Normal = [3]float64{normal.X, normal.Y, normal.Z}
	resp.Distance = hit.T

	var geometryProps map[string]interface{}
	resp.GeometryType, geometryProps = extractGeometryInfo(hit.Body.Shape)
	resp.Properties = extractMaterialInfo(hit.Body.Material, hit.Point)
	for k, v := range geometryProps {
		resp.Properties[k] = v
	}
	return resp, nil
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = components(geom.Center.Vector())
		properties["radius"] = geom.Radius
		return "sphere", properties
	case *geometry.Plane:
		properties["point"] = components(geom.Point.Vector())
		properties["normal"] = components(geom.Normal(geom.Point))
		return "plane", properties
	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{
			components(geom.A.Vector()),
			components(geom.B.Vector()),
			components(geom.C.Vector()),
		}
		return "triangle", properties
	default:
		return fmt.Sprintf("%T", shape), properties
	}
}

// extractMaterialInfo describes the material of a body at the hit point
func extractMaterialInfo(mat material.Material, point core.Point) map[string]interface{} {
	properties := map[string]interface{}{
		"shininess":  mat.Shininess,
		"smoothness": mat.Smoothness,
		"albedo":     components(mat.ColorAt(point)),
	}

	switch c := mat.Color.(type) {
	case *material.SolidColor:
		properties["texture"] = "solid"
	case *material.Checkerboard:
		properties["texture"] = "checkerboard"
		properties["checkerSize"] = c.Size
	}
	return properties
}

func components(v core.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles pixel inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", -1, 0, sc.Camera.Width-1)
	if err == nil && x < 0 {
		err = xerrors.New("missing x")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, sc.Camera.Height-1)
	if err == nil && y < 0 {
		err = xerrors.New("missing y")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := inspectPixel(sc, picture, x, y)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, resp)
}
