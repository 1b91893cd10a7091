package telemetry

import (
	"time"

	"github.com/pthm-cable/orrery/renderer"
)

// ParticleCounts is the particle state sampled at the end of a frame.
type ParticleCounts struct {
	CME         int
	Bursts      int // cumulative
	Truncated   int // cumulative
	BeltSprites int
}

// Collector accumulates per-frame render statistics within a window and
// produces WindowStats.
type Collector struct {
	windowTicks int64

	windowStartTick int64
	frames          int
	draws           float64
	issued          float64
	skipped         float64
	frameMS         []float64

	lastBursts    int
	lastTruncated int
}

// NewCollector creates a collector whose window spans windowSec seconds at
// the given tick rate.
func NewCollector(windowSec float64, ticksPerSec int) *Collector {
	ticks := int64(windowSec * float64(ticksPerSec))
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		windowTicks: ticks,
		frameMS:     make([]float64, 0, ticks),
	}
}

// RecordFrame adds one frame's render statistics and duration.
func (c *Collector) RecordFrame(s renderer.Stats, frame time.Duration) {
	c.frames++
	c.draws += float64(s.DrawCalls)
	c.issued += float64(s.Issued())
	c.skipped += float64(s.Skipped())
	c.frameMS = append(c.frameMS, float64(frame)/float64(time.Millisecond))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// Bursts and truncations are reported as deltas since the previous flush.
func (c *Collector) Flush(tick int64, simTime float64, p ParticleCounts, texturesPending int) WindowStats {
	ws := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTime:         simTime,
		Frames:          c.frames,
		CMEParticles:    p.CME,
		CMEBursts:       p.Bursts - c.lastBursts,
		CMETruncated:    p.Truncated - c.lastTruncated,
		BeltSprites:     p.BeltSprites,
		TexturesPending: texturesPending,
	}
	if c.frames > 0 {
		n := float64(c.frames)
		ws.DrawsMean = c.draws / n
		ws.IssuedMean = c.issued / n
		ws.SkippedMean = c.skipped / n
		if total := c.issued + c.skipped; total > 0 {
			ws.SkipRatio = c.skipped / total
		}
		ft := Summarize(c.frameMS)
		ws.FrameMSMean = ft.Mean
		ws.FrameMSStd = ft.StdDev
		ws.FrameMSP95 = ft.P95
	}

	c.windowStartTick = tick
	c.frames = 0
	c.draws, c.issued, c.skipped = 0, 0, 0
	c.frameMS = c.frameMS[:0]
	c.lastBursts = p.Bursts
	c.lastTruncated = p.Truncated

	return ws
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
