// Package camera provides the 2D orthographic camera used by the viewer.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/solis/pkg/math"
)

// Camera looks down on the tile plane. Zoom is in pixels per tile.
type Camera struct {
	Center math.Vec2

	Zoom    float32
	MinZoom float32
	MaxZoom float32

	// PanSpeed is in screen pixels per second, so panning feels the same at
	// every zoom level.
	PanSpeed  float32
	ZoomScale float32 // zoom factor per wheel step
}

// New creates a camera centered on the origin.
func New(zoom float32) *Camera {
	c := &Camera{
		MinZoom:   2,
		MaxZoom:   128,
		PanSpeed:  600,
		ZoomScale: 1.15,
	}
	c.Zoom = c.clampZoom(zoom)
	return c
}

func (c *Camera) clampZoom(z float32) float32 {
	if z < c.MinZoom {
		return c.MinZoom
	}
	if z > c.MaxZoom {
		return c.MaxZoom
	}
	return z
}

// Pan moves the camera by a direction scaled by dt seconds.
func (c *Camera) Pan(dx, dy, dt float32) {
	step := c.PanSpeed * dt / c.Zoom
	c.Center.X += dx * step
	c.Center.Y += dy * step
}

// ZoomBy zooms in for positive steps and out for negative ones.
func (c *Camera) ZoomBy(steps float32) {
	z := c.Zoom
	for ; steps > 0; steps-- {
		z *= c.ZoomScale
	}
	for ; steps < 0; steps++ {
		z /= c.ZoomScale
	}
	c.Zoom = c.clampZoom(z)
}

// Visible returns the world rectangle covered by a viewport of w x h pixels.
func (c *Camera) Visible(w, h int) (lo, hi math.Vec2) {
	hw := float32(w) / 2 / c.Zoom
	hh := float32(h) / 2 / c.Zoom
	return math.Vec2{X: c.Center.X - hw, Y: c.Center.Y - hh},
		math.Vec2{X: c.Center.X + hw, Y: c.Center.Y + hh}
}

// Projection returns the orthographic projection for a w x h viewport.
func (c *Camera) Projection(w, h int) mgl32.Mat4 {
	lo, hi := c.Visible(w, h)
	return mgl32.Ortho2D(lo.X, hi.X, lo.Y, hi.Y)
}

// ScreenToWorld converts window coordinates (origin top-left, Y down) to
// world coordinates.
func (c *Camera) ScreenToWorld(x, y, w, h int) math.Vec2 {
	return math.Vec2{
		X: c.Center.X + (float32(x)-float32(w)/2)/c.Zoom,
		Y: c.Center.Y - (float32(y)-float32(h)/2)/c.Zoom,
	}
}
