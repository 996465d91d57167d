package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Scene is a world together with everything needed to take pictures of it
type Scene struct {
	Name           string
	World          *World
	Camera         CameraConfig
	Pictures       []Picture // Positions to take pictures from
	RecursionDepth int       // How often view rays bounce between reflective bodies
}

// CameraConfig describes the camera sensor
type CameraConfig struct {
	Width       int     // Horizontal resolution in pixels
	Height      int     // Vertical resolution in pixels
	FieldOfView float64 // Angle of view in degrees
}

// Picture is one camera position
type Picture struct {
	Eye core.Point  // Point to look from
	Up  core.Vector // Camera tilt
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.World == nil {
		return core.InvalidArgument("scene world", "missing world")
	}
	if s.Camera.Width < 2 || s.Camera.Height < 2 {
		return core.InvalidArgument("camera resolution", "%dx%d must be at least 2x2", s.Camera.Width, s.Camera.Height)
	}
	if !(s.Camera.FieldOfView > 0 && s.Camera.FieldOfView < 180) {
		return core.InvalidArgument("camera angle of view", "%g is outside (0, 180)", s.Camera.FieldOfView)
	}
	if s.RecursionDepth < 0 {
		return core.InvalidArgument("recursion depth", "%d is negative", s.RecursionDepth)
	}
	if len(s.Pictures) == 0 {
		return core.InvalidArgument("scene pictures", "no camera positions")
	}
	for _, p := range s.Pictures {
		if !p.Eye.IsFinite() {
			return core.InvalidArgument("picture eye", "%v is not finite", p.Eye)
		}
		if _, err := p.Up.Normalize(); err != nil {
			return core.InvalidArgument("picture up", "%v", err)
		}
	}
	return nil
}

// GetPrimitiveCount returns the number of bodies in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World.Bodies())
}
