package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tick         int64
	SimTime      float64
	Speed        float64
	FPS          int32
	Paused       bool
	Focus        string
	Transition   bool
	Particles    int
	Render       renderer.Stats
	TexturesLeft int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the bottom-left corner, above the control legend.
func (h *HUD) Draw(data HUDData, screenHeight int32) {
	x, y := int32(10), screenHeight-118

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 24

	rl.DrawText(
		fmt.Sprintf("t=%.1f | speed x%s | FPS %d | tick %d", data.SimTime, FormatSpeed(data.Speed), data.FPS, data.Tick),
		x, y, 14, rl.LightGray,
	)
	y += 18

	focus := "Focus: " + data.Focus
	if data.Transition {
		focus += " (moving)"
	}
	rl.DrawText(focus, x, y, 14, rl.LightGray)
	y += 18

	rl.DrawText(
		fmt.Sprintf("draws %d | state calls %d issued, %d skipped | particles %d",
			data.Render.DrawCalls, data.Render.Issued(), data.Render.Skipped(), data.Particles),
		x, y, 14, rl.Gray,
	)
	y += 18

	if data.TexturesLeft > 0 {
		rl.DrawText(fmt.Sprintf("loading textures (%d left)", data.TexturesLeft), x, y, 14, rl.Gray)
	}
	if data.Paused {
		rl.DrawText("PAUSED", x+int32(rl.MeasureText(data.Title, 20))+12, screenHeight-118, 20, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	width := int32(260)
	height := r.Theme.Padding*2 + 40 + int32(len(telemetry.Phases))*14
	r.DrawPanel(p.x, p.y, width, height)

	x, y := p.x+r.Theme.Padding, p.y+r.Theme.Padding
	rl.DrawText("Frame time", x, y, 16, rl.White)
	y += 20
	rl.DrawText(
		fmt.Sprintf("avg %s  p95 %s", stats.AvgTickDuration.Round(time.Microsecond), stats.P95TickDuration.Round(time.Microsecond)),
		x, y, 14, rl.Yellow,
	)
	y += 20

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
