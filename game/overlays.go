package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/ui"
)

// drawOverlays draws every enabled 2D layer on top of the scene.
func (g *Game) drawOverlays() {
	focused := g.focusedIndex()

	if g.overlays.IsEnabled(ui.OverlayLabels) {
		g.projected = g.scene.project(g.camera, focused, g.projected)
		g.items = labelItems(g.projected, g.items)
		g.labels.Place(g.items, g.width, g.height, g.labels.MeasureFunc())
		g.labels.Draw()
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if e, ok := g.inspector.Selected(); ok {
			g.inspector.Draw(g.source.Sections(e))
		}
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.applyControls(g.controls.Draw(g.overlays, ui.ControlState{
			Paused:  g.paused,
			Speed:   g.speed,
			Focused: focused,
			Bodies:  g.buttons,
		}))
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}

	g.hud.Draw(ui.HUDData{
		Title:        "Orrery",
		Tick:         g.tick,
		SimTime:      g.scene.Time(),
		Speed:        g.speed,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Focus:        g.scene.Name(focused),
		Transition:   g.camera.State() == camera.Transitioning,
		Particles:    g.scene.ParticleCounts().CME,
		Render:       g.session.Stats,
		TexturesLeft: g.textures.Pending(),
	}, int32(g.height))
	g.hud.DrawControls(int32(g.height), controlsLegend)
}

// applyControls carries out the control panel's requests.
func (g *Game) applyControls(act ui.ControlActions) {
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.ResetCamera {
		g.camera.Reset()
	}
	if act.SpeedChanged {
		g.speed = act.Speed
	}
	if act.Focus >= 0 {
		g.focusOn(act.Focus)
	}
}
