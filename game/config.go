package game

import (
	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/config"
)

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64
	LogStats       bool    // log window and perf stats via slog
	StatsWindowSec float64 // seconds per telemetry window (0 = telemetry.log_interval)
	OutputDir      string  // CSV and config snapshot directory (empty = disabled)
	Headless       bool
	ConfigPath     string  // re-read by F5 to retune shading
}

// controlsLegend is the key help shown along the bottom edge.
const controlsLegend = "Space pause | [ ] speed | Tab/0-9 focus | wheel zoom | arrows/middle-drag orbit | Home reset | O B C L layers | H controls | I inspector | F3 perf | F5 reload shading"

func cameraOptions(cfg *config.Config) camera.Options {
	c := cfg.Camera
	return camera.Options{
		ViewportW:         cfg.Derived.ScreenW32,
		ViewportH:         cfg.Derived.ScreenH32,
		FovDeg:            float32(c.FovDeg),
		Near:              float32(c.Near),
		Far:               float32(c.Far),
		MinZoom:           float32(c.MinZoom),
		MaxZoom:           float32(c.MaxZoom),
		ZoomPerRadius:     float32(c.ZoomPerRadius),
		TransitionSeconds: float32(c.TransitionSeconds),
		YawDeg:            float32(c.YawDeg),
		PitchDeg:          float32(c.PitchDeg),
		InitialZoom:       float32(c.InitialZoom),
	}
}
