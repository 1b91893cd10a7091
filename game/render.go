package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/telemetry"
	"github.com/pthm-cable/orrery/ui"
)

// Draw builds the frame, renders the scene and overlays, then loads at most
// one pending texture.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseFrame)
	g.scene.BuildFrame(&g.frame, g.camera, Layers{
		Orbits:     g.overlays.IsEnabled(ui.OverlayOrbits),
		Belts:      g.overlays.IsEnabled(ui.OverlayBelts),
		CME:        g.overlays.IsEnabled(ui.OverlayCME),
		OrbitColor: g.cfg.Render.OrbitColor.Vec4(),
	})

	g.perf.StartPhase(telemetry.PhaseRender)
	rl.BeginDrawing()
	rl.ClearBackground(clearColor(g.cfg.Render.ClearColor))

	g.dispatcher.Render(g.session, &g.frame)
	g.drawOverlays()

	rl.EndDrawing()

	g.perf.StartPhase(telemetry.PhaseTextures)
	g.textures.LoadNext()

	g.perf.EndTick()
	g.perf.RecordFrame()

	counts := g.scene.ParticleCounts()
	pending := g.textures.Pending()
	g.collector.RecordFrame(g.session.Stats, g.perf.LastTick())
	g.metrics.RecordFrame(g.session.Stats, g.perf.LastTick(), counts, pending)
	g.frames++
	g.flushTelemetry()
}

// clearColor converts a config color to raylib's 8-bit form.
func clearColor(c config.RGBA) rl.Color {
	v := c.Vec4()
	return rl.ColorFromNormalized(rl.NewVector4(v[0], v[1], v[2], v[3]))
}
