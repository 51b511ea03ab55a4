// Package renderer draws world snapshots with raylib. It is a pure
// consumer of snapshots: nothing here mutates simulation state.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/components"
)

var (
	backgroundColor = rl.NewColor(18, 24, 32, 255)
	worldBorder     = rl.NewColor(60, 70, 85, 255)
	foodColor       = rl.NewColor(80, 200, 90, 255)
	maleColor       = rl.NewColor(90, 150, 255, 255)
	femaleColor     = rl.NewColor(255, 130, 180, 255)
	hudColor        = rl.NewColor(220, 225, 230, 255)
)

const (
	creatureRadius = 4.0
	foodSize       = 4.0
)

// Viewer renders world snapshots and handles camera and playback input.
type Viewer struct {
	cam *camera.Camera

	paused bool
	speed  int // simulation ticks per rendered frame
}

// NewViewer creates a viewer for a world of the given size.
func NewViewer(screenW, screenH, worldW, worldH float32) *Viewer {
	return &Viewer{
		cam:   camera.New(screenW, screenH, worldW, worldH),
		speed: 1,
	}
}

// Paused reports whether the simulation is paused.
func (v *Viewer) Paused() bool {
	return v.paused
}

// Speed returns the number of simulation ticks to run per frame.
func (v *Viewer) Speed() int {
	return v.speed
}

// HandleInput processes camera and playback controls for one frame.
// Space pauses, comma/period adjust speed, right-drag pans, the mouse
// wheel zooms, and R resets the camera.
func (v *Viewer) HandleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) && v.speed > 1 {
		v.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.speed < 64 {
		v.speed++
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.cam.Reset()
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		v.cam.Pan(-delta.X, -delta.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}

	v.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

// Draw renders one frame from the given snapshot.
func (v *Viewer) Draw(view *components.WorldView) {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	v.drawWorldBounds(view)
	v.drawFood(view)
	v.drawCreatures(view)
	v.drawHUD(view)
	v.drawControls()

	rl.EndDrawing()
}

func (v *Viewer) drawWorldBounds(view *components.WorldView) {
	x0, y0 := v.cam.WorldToScreen(0, 0)
	x1, y1 := v.cam.WorldToScreen(view.Width, view.Height)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), worldBorder)
}

func (v *Viewer) drawFood(view *components.WorldView) {
	half := float32(foodSize) / 2 * v.cam.Zoom
	for i := range view.Food {
		f := &view.Food[i]
		if !v.cam.IsVisible(f.X, f.Y, foodSize) {
			continue
		}
		sx, sy := v.cam.WorldToScreen(f.X, f.Y)
		rl.DrawRectangle(int32(sx-half), int32(sy-half), int32(half*2), int32(half*2), foodColor)
	}
}

func (v *Viewer) drawCreatures(view *components.WorldView) {
	radius := float32(creatureRadius) * v.cam.Zoom
	for i := range view.Creatures {
		c := &view.Creatures[i]
		if !v.cam.IsVisible(c.X, c.Y, creatureRadius) {
			continue
		}
		sx, sy := v.cam.WorldToScreen(c.X, c.Y)

		color := maleColor
		if c.Gender == components.Female {
			color = femaleColor
		}
		rl.DrawCircle(int32(sx), int32(sy), radius, color)
	}
}

func (v *Viewer) drawHUD(view *components.WorldView) {
	status := "running"
	if v.paused {
		status = "paused"
	}
	text := fmt.Sprintf("tick %d | creatures %d | food %d | %dx speed | %s",
		view.Tick, len(view.Creatures), len(view.Food), v.speed, status)
	rl.DrawText(text, 10, 10, 18, hudColor)
	rl.DrawFPS(10, 34)
}
