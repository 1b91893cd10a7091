// Package game wires the scene, camera, renderer, UI and telemetry into the
// per-frame loop.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/backend"
	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/inspector"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/telemetry"
	"github.com/pthm-cable/orrery/ui"
)

// Game holds the complete application state.
type Game struct {
	cfg   *config.Config
	scene *Scene

	// Rendering (nil in headless mode)
	backend    *backend.Raylib
	textures   *backend.TextureStore
	dispatcher *renderer.Dispatcher
	session    *renderer.Session
	frame      renderer.Frame
	camera     *camera.Camera

	// UI
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlPanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	labels    *ui.Labels
	inspector *inspector.Inspector
	source    *inspector.Source
	buttons   []ui.FocusButton

	// Per-frame scratch
	projected []projected
	targets   []inspector.Target
	items     []ui.LabelItem
	positions []telemetry.PositionRecord

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	metrics   *telemetry.Metrics
	logStats  bool

	// State
	tick     int64 // simulation ticks
	frames   int64 // frames drawn, or ticks when headless
	paused   bool
	speed    float64 // time-scale multiplier on top of simulation.time_scale
	headless bool
	cfgPath  string
	fixedDT  float64 // seconds per headless tick

	// Window dimensions
	width, height float32
}

// NewGameWithOptions creates a game. In graphical mode the window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:      cfg,
		scene:    NewScene(cfg, opts.Seed),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats: opts.LogStats,
		paused:   cfg.Simulation.StartPaused,
		speed:    1,
		headless: opts.Headless,
		cfgPath:  opts.ConfigPath,
		width:    cfg.Derived.ScreenW32,
		height:   cfg.Derived.ScreenH32,
	}

	ticksPerSec := max(cfg.Screen.TargetFPS, 1)
	g.fixedDT = 1 / float64(ticksPerSec)
	window := opts.StatsWindowSec
	if window <= 0 {
		window = cfg.Telemetry.LogInterval
	}
	g.collector = telemetry.NewCollector(window, ticksPerSec)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, err
	}

	if cfg.Metrics.Listen != "" {
		g.metrics = telemetry.NewMetrics()
		if err := g.metrics.Serve(cfg.Metrics.Listen, cfg.Metrics.Path); err != nil {
			g.output.Close()
			return nil, err
		}
		slog.Info("serving metrics", "addr", g.metrics.Addr(), "path", cfg.Metrics.Path)
	}

	if g.headless {
		return g, nil
	}

	if err := g.initGraphics(); err != nil {
		g.Unload()
		return nil, err
	}
	return g, nil
}

// initGraphics loads the body program, uploads geometry and builds the UI.
func (g *Game) initGraphics() error {
	cfg := g.cfg

	g.backend = backend.NewRaylib()
	prog, err := g.backend.LoadProgram(
		filepath.Join(cfg.Render.ShaderDir, "body.vs"),
		filepath.Join(cfg.Render.ShaderDir, "body.fs"),
	)
	if err != nil {
		return fmt.Errorf("loading body program: %w", err)
	}

	g.textures = backend.NewTextureStore(cfg.Render.TextureDir)
	g.scene.RegisterTextures(cfg, g.textures)
	g.textures.Init()

	g.scene.Upload(g.backend, cfg.Geometry)

	g.dispatcher, err = renderer.NewDispatcher(g.backend, prog, g.textures, g.scene.Sphere(), cfg.Shading.Params())
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	g.dispatcher.SetSunspots(cfg.Sunspots.Params())
	g.session = g.dispatcher.NewSession()

	g.camera = camera.New(cameraOptions(cfg))

	g.overlays = ui.NewOverlayRegistry(cfg.Render)
	g.controls = ui.NewControlPanel(10, 10, 250)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(g.width)-270, int32(g.height)-220)
	g.labels = ui.NewLabels(int32(cfg.Render.LabelSize))
	g.inspector = inspector.NewInspector(int32(g.width))
	g.source = inspector.NewSource(g.scene.World())
	for i := range g.scene.FocusCount() {
		g.buttons = append(g.buttons, ui.FocusButton{Index: i, Name: g.scene.Name(i)})
	}

	slog.Info("graphics ready",
		"bodies", g.scene.FocusCount(),
		"textures", g.textures.Pending(),
		"width", g.width,
		"height", g.height,
	)
	return nil
}

// Update runs input handling, one simulation step and the camera.
func (g *Game) Update() {
	g.perf.StartTick()

	g.handleInput()

	if !g.paused {
		g.scene.Step(float64(rl.GetFrameTime())*g.speed, g.perf)
		g.tick++
	}

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.updateCamera(rl.GetFrameTime())
}

// UpdateHeadless runs one fixed-step simulation tick without graphics.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()
	g.scene.Step(g.fixedDT*g.speed, g.perf)
	g.tick++
	g.perf.EndTick()

	g.collector.RecordFrame(renderer.Stats{}, g.perf.LastTick())
	g.metrics.RecordFrame(renderer.Stats{}, g.perf.LastTick(), g.scene.ParticleCounts(), 0)
	g.frames++
	g.flushTelemetry()
}

// updateCamera follows the focus target, or the transition's target while
// one is under way.
func (g *Game) updateCamera(dt float32) {
	id := g.camera.FocusID
	if g.camera.State() == camera.Transitioning {
		id = g.camera.Transition.TargetID
	}
	pos, _, ok := g.scene.FocusTarget(id)
	g.camera.Update(dt, pos, ok)
}

// focusOn starts a camera transition to the body at focus index i.
func (g *Game) focusOn(i int) {
	pos, radius, ok := g.scene.FocusTarget(i)
	if !ok {
		return
	}
	g.camera.FocusOn(i, radius, pos)
	slog.Debug("focus", "body", g.scene.Name(i), "index", i)
}

// focusedIndex returns the body the camera is on or heading to.
func (g *Game) focusedIndex() int {
	if g.camera.State() == camera.Transitioning {
		return g.camera.Transition.TargetID
	}
	return g.camera.FocusID
}

// reloadShading re-reads the config file and applies its shading and
// sunspot sections. Every other section keeps its startup value.
func (g *Game) reloadShading() {
	cfg, err := config.Load(g.cfgPath)
	if err != nil {
		slog.Warn("shading reload failed", "path", g.cfgPath, "error", err)
		return
	}
	g.dispatcher.SetParams(cfg.Shading.Params())
	g.dispatcher.SetSunspots(cfg.Sunspots.Params())
	slog.Info("shading reloaded", "path", g.cfgPath)
}

// Tick returns the number of simulation ticks run.
func (g *Game) Tick() int64 {
	return g.tick
}

// Scene returns the simulated system.
func (g *Game) Scene() *Scene {
	return g.scene
}

// Unload releases GPU resources, stops the metrics server and closes output
// files.
func (g *Game) Unload() {
	if g.textures != nil {
		g.textures.Unload()
	}
	if g.backend != nil {
		g.backend.Unload()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.metrics.Shutdown(ctx); err != nil {
		slog.Error("failed to stop metrics server", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
