package camera

import (
	"math"
	"testing"
)

func newTestCamera() *Camera {
	// Viewport 400x300, world 800x600
	return New(400, 300, 800, 600)
}

func TestNew_CentersOnWorld(t *testing.T) {
	c := newTestCamera()
	if c.X != 400 || c.Y != 300 {
		t.Errorf("camera not centered: (%f, %f)", c.X, c.Y)
	}
	if c.Zoom != 1.0 {
		t.Errorf("initial zoom = %f, want 1.0", c.Zoom)
	}
	if c.MinZoom != 0.5 {
		t.Errorf("min zoom = %f, want 0.5", c.MinZoom)
	}
}

func TestWorldToScreen_RoundTrip(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(2.0)
	c.Pan(30, -20)

	wx, wy := float32(420.0), float32(280.0)
	sx, sy := c.WorldToScreen(wx, wy)
	rx, ry := c.ScreenToWorld(sx, sy)

	if math.Abs(float64(rx-wx)) > 0.001 || math.Abs(float64(ry-wy)) > 0.001 {
		t.Errorf("round trip (%f, %f) -> (%f, %f)", wx, wy, rx, ry)
	}
}

func TestWorldToScreen_CameraCenterMapsToViewportCenter(t *testing.T) {
	c := newTestCamera()
	sx, sy := c.WorldToScreen(c.X, c.Y)
	if sx != 200 || sy != 150 {
		t.Errorf("camera center at (%f, %f), want viewport center (200, 150)", sx, sy)
	}
}

func TestPan_ClampsAtWorldEdge(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(2.0) // visible area 200x150

	c.Pan(-1e6, -1e6)
	// Visible half-extents are 100x75; the view must stop at the edge.
	if c.X != 100 || c.Y != 75 {
		t.Errorf("camera at (%f, %f), want clamped to (100, 75)", c.X, c.Y)
	}

	c.Pan(1e6, 1e6)
	if c.X != 700 || c.Y != 525 {
		t.Errorf("camera at (%f, %f), want clamped to (700, 525)", c.X, c.Y)
	}
}

func TestPan_NoWrapAroundEdges(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(2.0)
	c.Pan(1e6, 0)

	// A point at the far left must project off-screen, never wrap into view.
	sx, _ := c.WorldToScreen(0, c.Y)
	if sx >= 0 {
		t.Errorf("left world edge projected on-screen at x=%f after panning right", sx)
	}
}

func TestSetZoom_Clamped(t *testing.T) {
	c := newTestCamera()

	c.SetZoom(100)
	if c.Zoom != c.MaxZoom {
		t.Errorf("zoom = %f, want clamped to max %f", c.Zoom, c.MaxZoom)
	}

	c.SetZoom(0.01)
	if c.Zoom != c.MinZoom {
		t.Errorf("zoom = %f, want clamped to min %f", c.Zoom, c.MinZoom)
	}
}

func TestZoomOut_RecentersWhenViewCoversWorld(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(2.0)
	c.Pan(1e6, 1e6)

	// At min zoom the whole world is visible; the camera must recenter.
	c.SetZoom(c.MinZoom)
	if c.X != 400 {
		t.Errorf("camera x = %f, want recentered to 400", c.X)
	}
}

func TestIsVisible(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(2.0) // visible world area 200x150 around center (400, 300)

	if !c.IsVisible(400, 300, 5) {
		t.Error("center must be visible")
	}
	if c.IsVisible(700, 300, 5) {
		t.Error("point far outside view reported visible")
	}
	// Just off the right edge, but its radius overlaps the view.
	if !c.IsVisible(505, 300, 10) {
		t.Error("circle overlapping view edge reported hidden")
	}
}

func TestResize_UpdatesConstraints(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(c.MinZoom)

	c.Resize(800, 600)
	if c.MinZoom != 1.0 {
		t.Errorf("min zoom after resize = %f, want 1.0", c.MinZoom)
	}
	if c.Zoom < c.MinZoom {
		t.Errorf("zoom %f below new minimum %f", c.Zoom, c.MinZoom)
	}
}

func TestReset(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(3.0)
	c.Pan(100, 50)

	c.Reset()
	if c.X != 400 || c.Y != 300 || c.Zoom != 1.0 {
		t.Errorf("reset state (%f, %f, zoom %f), want (400, 300, 1.0)", c.X, c.Y, c.Zoom)
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(2.0)

	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	if minX != 300 || maxX != 500 || minY != 225 || maxY != 375 {
		t.Errorf("bounds (%f, %f, %f, %f), want (300, 225, 500, 375)",
			minX, minY, maxX, maxY)
	}
}
