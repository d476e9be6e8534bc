package main

import (
	"github.com/go-gl/mathgl/mgl64"

	playrho "github.com/gmaf/PlayRho"
)

// camera projects world coordinates (meters, y up) onto the screen
// (pixels, y down) through an orthographic matrix.
type camera struct {
	center playrho.Vec2
	scale  float64 // pixels per meter
	width  int
	height int
	proj   mgl64.Mat4
}

func newCamera(spec cameraSpec, width, height int) *camera {
	c := &camera{
		center: vec2(spec.Center),
		scale:  spec.Scale,
		width:  width,
		height: height,
	}
	c.refresh()
	return c
}

func (c *camera) resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	c.refresh()
}

func (c *camera) refresh() {
	halfW := float64(c.width) / (2 * c.scale)
	halfH := float64(c.height) / (2 * c.scale)
	c.proj = mgl64.Ortho2D(
		c.center.X-halfW, c.center.X+halfW,
		c.center.Y-halfH, c.center.Y+halfH,
	)
}

// toScreen maps a world point to pixel coordinates.
func (c *camera) toScreen(p playrho.Vec2) (float32, float32) {
	ndc := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, 0}, c.proj)
	x := (ndc.X() + 1) / 2 * float64(c.width)
	y := (1 - ndc.Y()) / 2 * float64(c.height)
	return float32(x), float32(y)
}

// toPixels converts a world length to pixels.
func (c *camera) toPixels(length float64) float32 {
	return float32(length * c.scale)
}
