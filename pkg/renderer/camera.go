package renderer

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Camera generates one primary ray per pixel. The image plane lies at distance 1
// in front of the eye and spans the configured angle of view vertically.
type Camera struct {
	center core.Point // Point the camera looks at
	resW   int        // Horizontal resolution in pixels
	resH   int        // Vertical resolution in pixels
	width  float64    // Image plane width
	height float64    // Image plane height
}

// NewCamera creates a camera looking at center. fov is the vertical angle of view in degrees.
func NewCamera(center core.Point, resW, resH int, fov float64) (*Camera, error) {
	if !center.IsFinite() {
		return nil, core.InvalidArgument("camera center", "%v is not finite", center)
	}
	if resW < 2 || resH < 2 {
		return nil, core.InvalidArgument("camera resolution", "%dx%d must be at least 2x2", resW, resH)
	}
	if !(fov > 0 && fov < 180) {
		return nil, core.InvalidArgument("camera angle of view", "%g is outside (0, 180)", fov)
	}

	height := 2 * math.Tan(fov*math.Pi/180/2)
	width := float64(resW) / float64(resH) * height

	return &Camera{
		center: center,
		resW:   resW,
		resH:   resH,
		width:  width,
		height: height,
	}, nil
}

// Resolution returns the number of pixels in each direction
func (c *Camera) Resolution() (int, int) {
	return c.resW, c.resH
}

// Sys returns the orthonormal camera basis for an eye position: f looks at the
// center, s points right and u points up. It fails when the eye coincides with
// the center or up is parallel to the viewing direction.
func (c *Camera) Sys(eye core.Point, up core.Vector) (f, s, u core.Vector, err error) {
	f, err = c.center.Sub(eye).Normalize()
	if err != nil {
		return f, s, u, core.InvalidArgument("camera eye", "%v coincides with the center", eye)
	}
	s, err = f.Cross(up).Normalize()
	if err != nil {
		return f, s, u, core.InvalidArgument("camera up", "%v is parallel to the viewing direction", up)
	}
	u = s.Cross(f)
	return f, s, u, nil
}

// View is a camera placed at an eye position
type View struct {
	eye     core.Point
	f, s, u core.Vector
	pw, ph  float64 // Pixel width and height on the image plane
	width   float64
	height  float64
	resW    int
	resH    int
}

// View places the camera at eye, tilted by up
func (c *Camera) View(eye core.Point, up core.Vector) (*View, error) {
	if !eye.IsFinite() {
		return nil, core.InvalidArgument("camera eye", "%v is not finite", eye)
	}
	f, s, u, err := c.Sys(eye, up)
	if err != nil {
		return nil, err
	}
	return &View{
		eye:    eye,
		f:      f,
		s:      s,
		u:      u,
		pw:     c.width / float64(c.resW-1),
		ph:     c.height / float64(c.resH-1),
		width:  c.width,
		height: c.height,
		resW:   c.resW,
		resH:   c.resH,
	}, nil
}

// RayAt returns the primary ray through pixel (x, y). Pixel (0, 0) is the
// bottom left corner of the picture.
func (v *View) RayAt(x, y int) (core.Ray, error) {
	dir := v.f.
		Add(v.s.Scale(float64(x)*v.pw - v.width/2)).
		Add(v.u.Scale(float64(y)*v.ph - v.height/2))
	return core.NewRay(v.eye, dir)
}

// Sweep calls fn for every pixel, column by column. It stops at the first error.
func (v *View) Sweep(fn func(x, y int, ray core.Ray) error) error {
	for x := 0; x < v.resW; x++ {
		for y := 0; y < v.resH; y++ {
			ray, err := v.RayAt(x, y)
			if err != nil {
				return err
			}
			if err := fn(x, y, ray); err != nil {
				return err
			}
		}
	}
	return nil
}
