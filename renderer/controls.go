package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawControls renders the playback panel in the bottom-left corner.
func (v *Viewer) drawControls() {
	panelX := float32(10)
	panelY := float32(rl.GetScreenHeight()) - 70

	label := "Pause"
	if v.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 90, Height: 26}, label) {
		v.paused = !v.paused
	}
	if gui.Button(rl.Rectangle{X: panelX + 100, Y: panelY, Width: 90, Height: 26}, "Reset View") {
		v.cam.Reset()
	}

	panelY += 34
	rl.DrawText("Speed", int32(panelX), int32(panelY+4), 14, hudColor)
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: panelX + 60, Y: panelY, Width: 130, Height: 20},
		"1", "64",
		float32(v.speed), 1, 64,
	)
	if int(newSpeed) != v.speed {
		v.speed = int(newSpeed)
	}
	rl.DrawText(fmt.Sprintf("%dx", v.speed), int32(panelX+198), int32(panelY+2), 16, hudColor)
}
