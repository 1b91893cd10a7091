package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample of values.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P95    float64
}

// Summarize computes mean, spread and empirical quantiles of values. The
// input is not modified. An empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		Min:  floats.Min(sorted),
		Max:  floats.Max(sorted),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// WindowStats holds aggregated render and particle statistics for one
// logging window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`

	// Per-frame render calls
	DrawsMean   float64 `csv:"draws_mean"`
	IssuedMean  float64 `csv:"issued_mean"`
	SkippedMean float64 `csv:"skipped_mean"`
	SkipRatio   float64 `csv:"skip_ratio"`

	// Frame time in milliseconds
	FrameMSMean float64 `csv:"frame_ms_mean"`
	FrameMSStd  float64 `csv:"frame_ms_std"`
	FrameMSP95  float64 `csv:"frame_ms_p95"`

	// Particles at window end, events during window
	CMEParticles int `csv:"cme_particles"`
	CMEBursts    int `csv:"cme_bursts"`
	CMETruncated int `csv:"cme_truncated"`
	BeltSprites  int `csv:"belt_sprites"`

	TexturesPending int `csv:"textures_pending"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("frames", s.Frames),
		slog.Float64("draws_mean", s.DrawsMean),
		slog.Float64("issued_mean", s.IssuedMean),
		slog.Float64("skipped_mean", s.SkippedMean),
		slog.Float64("skip_ratio", s.SkipRatio),
		slog.Float64("frame_ms_mean", s.FrameMSMean),
		slog.Float64("frame_ms_p95", s.FrameMSP95),
		slog.Int("cme_particles", s.CMEParticles),
		slog.Int("cme_bursts", s.CMEBursts),
		slog.Int("cme_truncated", s.CMETruncated),
		slog.Int("belt_sprites", s.BeltSprites),
		slog.Int("textures_pending", s.TexturesPending),
	)
}
