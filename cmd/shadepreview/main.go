// Shading preview tool - a CPU-shaded sphere with an occluder and sliders for
// the lighting parameters.
//
// Usage: go run ./cmd/shadepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/shading"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	gridSize     = 256
	panelWidth   = windowWidth - previewSize - 30
)

// panel lays out labelled slider rows top to bottom.
type panel struct {
	x, y    float32
	changed bool
}

func (p *panel) slider(label, format string, value *float32, lo, hi float32) {
	rl.DrawText(label, int32(p.x), int32(p.y), 14, rl.Gray)
	p.y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: p.y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%g", lo), fmt.Sprintf("%g", hi),
		*value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(p.x+float32(panelWidth-70)), int32(p.y+2), 16, rl.DarkGray)
	if v != *value {
		*value = v
		p.changed = true
	}
	p.y += 32
}

func (p *panel) heading(text string) {
	rl.DrawText(text, int32(p.x), int32(p.y), 16, rl.DarkGray)
	p.y += 24
}

func (p *panel) toggle(x float32, label string, on *bool) {
	v := gui.CheckBox(rl.Rectangle{X: x, Y: p.y, Width: 16, Height: 16}, label, *on)
	if v != *on {
		*on = v
		p.changed = true
	}
}

func defaultDisc() shading.Disc {
	return shading.Disc{
		Size:             gridSize,
		SunAzimuth:       mgl32.DegToRad(60),
		SunDistance:      20,
		OccluderDistance: 4,
		OccluderRadius:   0.27,
		Day:              mgl32.Vec3{0.25, 0.45, 0.8},
		Night:            mgl32.Vec3{0.9, 0.75, 0.4},
		Caps:             shading.CapTerminator,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := cfg.Shading.Params()

	rl.InitWindow(windowWidth, windowHeight, "Shading Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaults
	disc := defaultDisc()
	azimuth := mgl32.RadToDeg(disc.SunAzimuth)

	pixels := make([]mgl32.Vec3, gridSize*gridSize)
	colors := make([]rl.Color, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			azimuth = float32(math.Mod(float64(azimuth+20*rl.GetFrameTime()+180), 360)) - 180
			needsRegen = true
		}

		if needsRegen {
			disc.SunAzimuth = mgl32.DegToRad(azimuth)
			pixels = disc.Render(pixels, params)
			toColors(colors, pixels)
			rl.UpdateTexture(texture, colors)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Sub-solar light: %.2f", subSolarShadow(disc, params)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Sun azimuth: %.0f deg", azimuth), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Layers: %s", disc.Caps), 15, statsY+40, 16, rl.DarkGray)

		p := &panel{x: previewSize + 20, y: 10}
		rl.DrawText("Shading Parameters", int32(p.x), int32(p.y), 20, rl.DarkGray)
		p.y += 35

		p.slider("Ambient", "%.3f", &params.Ambient, 0, 0.3)
		p.slider("Umbra level", "%.2f", &params.UmbraLevel, 0, 1)
		p.slider("Penumbra scale (x occluder radius)", "%.2f", &params.PenumbraScale, 1, 4)
		p.slider("Terminator threshold", "%.3f", &params.TerminatorThreshold, 0, 0.3)
		p.slider("Terminator band", "%.3f", &params.TerminatorBand, 0, 0.5)
		p.slider("Night level", "%.3f", &params.NightLevel, 0, 0.2)

		rl.DrawLine(int32(p.x), int32(p.y), int32(p.x)+int32(panelWidth)-20, int32(p.y), rl.LightGray)
		p.y += 10
		p.heading("Geometry")
		p.slider("Sun azimuth", "%.0f", &azimuth, -180, 180)
		p.slider("Occluder distance", "%.1f", &disc.OccluderDistance, 1.1, 15)
		p.slider("Occluder offset", "%.2f", &disc.OccluderOffsetX, -2, 2)
		p.slider("Occluder radius", "%.2f", &disc.OccluderRadius, 0, 1)

		terminator := disc.Caps.Has(shading.CapTerminator)
		night := disc.Caps.Has(shading.CapNight)
		specular := disc.Caps.Has(shading.CapSpecular)
		p.toggle(p.x, "Terminator", &terminator)
		p.toggle(p.x+120, "Night", &night)
		p.toggle(p.x+220, "Specular", &specular)
		disc.Caps = capsOf(terminator, night, specular)
		p.y += 30

		if p.changed {
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: p.x, Y: p.y, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: p.x + 130, Y: p.y, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			disc = defaultDisc()
			azimuth = mgl32.RadToDeg(disc.SunAzimuth)
			needsRegen = true
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(p.x), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			out, err := shadingYAML(cfg.Shading, params)
			if err != nil {
				slog.Error("failed to encode shading", "error", err)
			} else {
				rl.SetClipboardText(out)
			}
		}

		rl.EndDrawing()
	}
}

func capsOf(terminator, night, specular bool) shading.Capabilities {
	var c shading.Capabilities
	if terminator {
		c |= shading.CapTerminator
	}
	if night {
		c |= shading.CapNight
	}
	if specular {
		c |= shading.CapSpecular
	}
	return c
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// toColors converts linear RGB to 8-bit, clamping overbright pixels.
func toColors(dst []rl.Color, src []mgl32.Vec3) {
	for i, c := range src {
		dst[i] = rl.Color{R: channel(c.X()), G: channel(c.Y()), B: channel(c.Z()), A: 255}
	}
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1) * 255)
}

// subSolarShadow is the eclipse multiplier at the point facing the sun.
func subSolarShadow(disc shading.Disc, p shading.Params) float32 {
	o, ok := disc.Occluder()
	if !ok {
		return 1
	}
	s, c := math.Sincos(float64(disc.SunAzimuth))
	toSun := mgl32.Vec3{float32(s), 0, float32(c)}
	return shading.Eclipse(toSun.Mul(1-disc.SunDistance), o.Center, o.Radius, p)
}

// shadingYAML renders the shading section with params applied over base.
func shadingYAML(base config.ShadingConfig, p shading.Params) (string, error) {
	base.Ambient = float64(p.Ambient)
	base.UmbraLevel = float64(p.UmbraLevel)
	base.PenumbraScale = float64(p.PenumbraScale)
	base.TerminatorThreshold = float64(p.TerminatorThreshold)
	base.TerminatorBand = float64(p.TerminatorBand)
	base.NightLevel = float64(p.NightLevel)

	out, err := yaml.Marshal(map[string]config.ShadingConfig{"shading": base})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
