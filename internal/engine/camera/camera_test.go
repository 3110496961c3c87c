package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/solis/pkg/math"
)

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		start, steps float32
		want         float32
	}{
		{16, 0, 16},
		{1, 0, 2},
		{500, 0, 128},
		{100, 10, 128},
		{3, -10, 2},
	}
	for _, tt := range tests {
		c := New(tt.start)
		c.ZoomBy(tt.steps)
		if c.Zoom != tt.want {
			t.Errorf("New(%v).ZoomBy(%v) zoom = %v, want %v", tt.start, tt.steps, c.Zoom, tt.want)
		}
	}
}

func TestPanScalesWithZoom(t *testing.T) {
	near, far := New(32), New(8)
	near.Pan(1, 0, 1)
	far.Pan(1, 0, 1)
	if far.Center.X != 4*near.Center.X {
		t.Errorf("pan at zoom 8 = %v, at zoom 32 = %v", far.Center.X, near.Center.X)
	}
}

func TestVisibleAndScreenToWorld(t *testing.T) {
	c := New(16)
	c.Center = math.Vec2{X: 10, Y: -4}

	lo, hi := c.Visible(320, 160)
	if lo != (math.Vec2{X: 0, Y: -9}) || hi != (math.Vec2{X: 20, Y: 1}) {
		t.Errorf("Visible() = %+v, %+v", lo, hi)
	}

	if got := c.ScreenToWorld(0, 0, 320, 160); got != (math.Vec2{X: 0, Y: 1}) {
		t.Errorf("top-left = %+v", got)
	}
	if got := c.ScreenToWorld(160, 80, 320, 160); got != c.Center {
		t.Errorf("center = %+v", got)
	}
}

func TestProjectionMapsVisibleCorners(t *testing.T) {
	c := New(10)
	c.Center = math.Vec2{X: 5, Y: 5}
	proj := c.Projection(200, 100)
	lo, hi := c.Visible(200, 100)

	bl := proj.Mul4x1(mgl32.Vec4{lo.X, lo.Y, 0, 1})
	tr := proj.Mul4x1(mgl32.Vec4{hi.X, hi.Y, 0, 1})
	if !bl.ApproxEqual(mgl32.Vec4{-1, -1, 0, 1}) || !tr.ApproxEqual(mgl32.Vec4{1, 1, 0, 1}) {
		t.Errorf("corners map to %v and %v", bl, tr)
	}
}
