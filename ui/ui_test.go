package ui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/vecmath"
)

func TestOverlayDefaultsFollowConfig(t *testing.T) {
	reg := NewOverlayRegistry(config.RenderConfig{ShowOrbits: true, ShowLabels: false, ShowBelts: true})

	tests := []struct {
		id   OverlayID
		want bool
	}{
		{OverlayOrbits, true},
		{OverlayBelts, true},
		{OverlayCME, false},
		{OverlayLabels, false},
		{OverlayInspector, true},
		{OverlayPerf, false},
	}
	for _, tt := range tests {
		if got := reg.IsEnabled(tt.id); got != tt.want {
			t.Errorf("%s enabled = %v, want %v", tt.id, got, tt.want)
		}
	}
	if n := len(reg.ByCategory("scene")); n != 4 {
		t.Errorf("scene overlays = %d, want 4", n)
	}
}

func TestOverlayKeyToggles(t *testing.T) {
	reg := NewOverlayRegistry(config.RenderConfig{})

	id, on, ok := reg.HandleKeyPress(rl.KeyC)
	if !ok || id != OverlayCME || !on {
		t.Fatalf("HandleKeyPress(C) = %s %v %v", id, on, ok)
	}
	if _, on, _ := reg.HandleKeyPress(rl.KeyC); on {
		t.Error("second press should switch it off")
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled something")
	}

	reg.SetEnabled("missing", true)
	if reg.IsEnabled("missing") {
		t.Error("unknown overlay became enabled")
	}
	if reg.Toggle("missing") {
		t.Error("toggling unknown overlay reported on")
	}
}

func TestSpeedMapping(t *testing.T) {
	tests := []struct {
		speed float64
		exp   float64
	}{
		{1, 0},
		{4, 2},
		{0.25, -2},
		{0, minSpeedExp},
		{1e9, maxSpeedExp},
	}
	for _, tt := range tests {
		if got := SpeedExponent(tt.speed); got != tt.exp {
			t.Errorf("SpeedExponent(%v) = %v, want %v", tt.speed, got, tt.exp)
		}
	}

	if got := SpeedFromExponent(1.1); got != 2 {
		t.Errorf("snap 1.1 = %v, want 2", got)
	}
	if got := SpeedFromExponent(0.5); math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Errorf("SpeedFromExponent(0.5) = %v", got)
	}
	if got := SpeedFromExponent(99); got != math.Pow(2, maxSpeedExp) {
		t.Errorf("clamp = %v", got)
	}
}

func TestFormatSpeed(t *testing.T) {
	for speed, want := range map[float64]string{32: "32", 2: "2.0", 0.5: "0.50"} {
		if got := FormatSpeed(speed); got != want {
			t.Errorf("FormatSpeed(%v) = %q, want %q", speed, got, want)
		}
	}
}

func TestControlPanelHeight(t *testing.T) {
	c := NewControlPanel(10, 10, 240)
	base := c.Height(7, 0)
	if got := c.Height(7, 3); got != base+focusBtnH+4 {
		t.Errorf("one row of buttons adds %d", got-base)
	}
	if got := c.Height(7, 4); got != base+2*(focusBtnH+4) {
		t.Errorf("two rows of buttons adds %d", got-base)
	}
	if !c.Contains(20, 20, 7, 3) || c.Contains(400, 20, 7, 3) {
		t.Error("Contains disagrees with panel bounds")
	}
}

func fixedWidth(s string) int32 { return int32(len(s)) * 6 }

func TestLabelsPlace(t *testing.T) {
	l := NewLabels(12)
	items := []LabelItem{
		{Text: "Far", Screen: vecmath.ScreenPoint{X: 100, Y: 100, Depth: 0.9, Visible: true}},
		{Text: "Near", Screen: vecmath.ScreenPoint{X: 102, Y: 100, Depth: 0.2, Visible: true}},
		{Text: "Behind", Screen: vecmath.ScreenPoint{X: 300, Y: 300, Depth: 1.2}},
		{Text: "Offscreen", Screen: vecmath.ScreenPoint{X: -50, Y: 100, Depth: 0.5, Visible: true}},
		{Text: "Alone", Screen: vecmath.ScreenPoint{X: 500, Y: 400, Depth: 0.5, Visible: true}, Radius: 10},
	}

	placed := l.Place(items, 800, 600, fixedWidth)
	if len(placed) != 2 {
		t.Fatalf("placed %+v, want Near and Alone", placed)
	}
	if placed[0].Text != "Near" || placed[1].Text != "Alone" {
		t.Errorf("order = %s, %s", placed[0].Text, placed[1].Text)
	}
	alone := placed[1]
	if alone.X != 500-15 || alone.Y != 400-10-12-2 || alone.W != 30 {
		t.Errorf("Alone at %d,%d w=%d", alone.X, alone.Y, alone.W)
	}
}

func TestLabelsFocusedAlwaysShown(t *testing.T) {
	l := NewLabels(12)
	items := []LabelItem{
		{Text: "Moon", Screen: vecmath.ScreenPoint{X: 100, Y: 100, Depth: 0.1, Visible: true}},
		{Text: "Earth", Screen: vecmath.ScreenPoint{X: 101, Y: 100, Depth: 0.3, Visible: true}, Focused: true},
	}
	placed := l.Place(items, 800, 600, fixedWidth)
	if len(placed) != 1 || placed[0].Text != "Earth" || !placed[0].Focused {
		t.Errorf("placed = %+v, want only the focused label", placed)
	}
}
