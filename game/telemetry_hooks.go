package game

import (
	"log/slog"
)

// flushTelemetry closes the stats window when it is full: it logs the window
// and perf stats when enabled and appends them, with a snapshot of every
// body's position, to the CSV output.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frames) {
		return
	}

	pending := 0
	if g.textures != nil {
		pending = g.textures.Pending()
	}
	stats := g.collector.Flush(g.frames, g.scene.Time(), g.scene.ParticleCounts(), pending)
	perfStats := g.perf.Stats()

	if g.logStats {
		slog.Info("window", "stats", stats)
		slog.Info("perf", "tick", g.tick, "stats", perfStats)
	}

	if g.output == nil {
		return
	}
	if err := g.output.WriteWindow(stats); err != nil {
		slog.Error("failed to write window stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	g.positions = g.scene.Positions(g.tick, g.positions[:0])
	if err := g.output.WritePositions(g.positions); err != nil {
		slog.Error("failed to write positions", "error", err)
	}
}
