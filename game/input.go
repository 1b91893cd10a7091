package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/ui"
)

// dragSensitivity is radians of camera orbit per pixel of mouse drag.
const dragSensitivity = 0.005

// digitKeys maps 0-9 to focus indices.
var digitKeys = [...]int32{
	rl.KeyZero, rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour,
	rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// handleInput processes all user input.
func (g *Game) handleInput() {
	g.handleResize()

	// Overlay toggles
	if key := rl.GetKeyPressed(); key != 0 {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			g.applyOverlay(id, on)
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		g.speed = ui.SpeedFromExponent(ui.SpeedExponent(g.speed) - 1)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		g.speed = ui.SpeedFromExponent(ui.SpeedExponent(g.speed) + 1)
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.reloadShading()
	}

	g.handleFocusInput()
	g.handleCameraInput()
	g.handleSelection()
}

// applyOverlay reacts to an overlay change.
func (g *Game) applyOverlay(id ui.OverlayID, on bool) {
	if id == ui.OverlayInspector && !on {
		g.inspector.Deselect()
	}
}

// handleResize updates dimensions when the window changes size.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.width = float32(rl.GetScreenWidth())
	g.height = float32(rl.GetScreenHeight())
	g.camera.Resize(g.width, g.height)
	g.inspector.Resize(int32(g.width))
	g.perfPanel.SetPosition(int32(g.width)-270, int32(g.height)-220)
}

// handleFocusInput cycles focus with Tab (Shift+Tab backwards) and jumps
// with the digit keys.
func (g *Game) handleFocusInput() {
	n := g.scene.FocusCount()
	if n == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		cur := g.focusedIndex()
		step := 1
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			step = -1
		}
		g.focusOn(nextFocus(cur, step, n))
	}
	for i, key := range digitKeys {
		if rl.IsKeyPressed(key) && i < n {
			g.focusOn(i)
		}
	}
}

// nextFocus steps through the focus cycle, wrapping at both ends. From no
// focus it starts at the first or last body.
func nextFocus(cur, step, n int) int {
	if cur == camera.NoFocus {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return ((cur+step)%n + n) % n
}

// handleCameraInput processes zoom, orbit and reset controls.
func (g *Game) handleCameraInput() {
	cc := g.cfg.Camera
	dt := rl.GetFrameTime()
	mouse := rl.GetMousePosition()
	overUI := g.overPanels(mouse.X, mouse.Y)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overUI {
		g.camera.ZoomBy(pow32(float32(cc.ZoomStep), wheel))
	}
	if rl.IsKeyDown(rl.KeyEqual) || rl.IsKeyDown(rl.KeyKpAdd) {
		g.camera.ZoomBy(pow32(float32(cc.ZoomStep), dt*5))
	}
	if rl.IsKeyDown(rl.KeyMinus) || rl.IsKeyDown(rl.KeyKpSubtract) {
		g.camera.ZoomBy(pow32(float32(cc.ZoomStep), -dt*5))
	}

	orbit := float32(cc.OrbitSpeed) * dt
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		g.camera.Rotate(-orbit, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		g.camera.Rotate(orbit, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		g.camera.Rotate(0, orbit)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		g.camera.Rotate(0, -orbit)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) && !overUI {
		d := rl.GetMouseDelta()
		g.camera.Rotate(d.X*dragSensitivity, d.Y*dragSensitivity)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleSelection picks the body under a left click, selects it in the
// inspector and focuses the camera on it.
func (g *Game) handleSelection() {
	if !g.overlays.IsEnabled(ui.OverlayInspector) {
		return
	}
	g.projected = g.scene.project(g.camera, g.focusedIndex(), g.projected)
	g.targets = pickTargets(g.projected, g.targets)

	mouse := rl.GetMousePosition()
	if g.overlays.IsEnabled(ui.OverlayControls) &&
		g.controls.Contains(mouse.X, mouse.Y, len(g.overlays.All()), len(g.buttons)) {
		return
	}
	if g.inspector.HandleInput(g.targets) {
		if e, ok := g.inspector.Selected(); ok {
			g.focusOn(g.scene.FocusIndex(e))
		}
	}
}

// overPanels reports whether a screen point is over a visible panel.
func (g *Game) overPanels(x, y float32) bool {
	if g.overlays.IsEnabled(ui.OverlayControls) &&
		g.controls.Contains(x, y, len(g.overlays.All()), len(g.buttons)) {
		return true
	}
	return g.overlays.IsEnabled(ui.OverlayInspector) && g.inspector.Contains(x, y)
}
