package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Time-scale slider range as powers of two.
const (
	minSpeedExp = -4
	maxSpeedExp = 6
)

// FocusButton is one body offered in the focus grid.
type FocusButton struct {
	Index int // position in the focus cycle
	Name  string
}

// ControlState is what the panel displays.
type ControlState struct {
	Paused  bool
	Speed   float64 // time-scale multiplier
	Focused int     // focus index, -1 for none
	Bodies  []FocusButton
}

// ControlActions are the user's requests from one frame of the panel.
type ControlActions struct {
	TogglePause  bool
	ResetCamera  bool
	Speed        float64 // new multiplier when SpeedChanged
	SpeedChanged bool
	Focus        int // requested focus index, -1 for none
}

// ControlPanel renders the left-side raygui panel with overlay toggles, the
// time-scale slider and focus buttons.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

const (
	rowHeight     = 22
	focusColumns  = 3
	focusBtnH     = 22
	sectionHeader = 20
)

// Height returns the panel height for the given overlay and focus button counts.
func (c *ControlPanel) Height(overlays int, bodies int) int32 {
	p := c.renderer.Theme.Padding
	rows := int32((bodies + focusColumns - 1) / focusColumns)
	h := p + sectionHeader                  // title
	h += int32(overlays) * rowHeight        // toggles
	h += sectionHeader + rowHeight + 8      // speed
	h += rowHeight                          // pause / reset
	h += sectionHeader + rows*(focusBtnH+4) // focus grid
	return h + p
}

// Contains reports whether a screen point falls inside the panel, so clicks
// there are not treated as picks.
func (c *ControlPanel) Contains(x, y float32, overlays, bodies int) bool {
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.Height(overlays, bodies))
}

// Draw renders the panel and returns the actions taken this frame.
// Overlay toggles are applied to the registry directly.
func (c *ControlPanel) Draw(overlays *OverlayRegistry, st ControlState) ControlActions {
	act := ControlActions{Focus: -1}
	r := c.renderer
	p := r.Theme.Padding
	all := overlays.All()

	r.DrawPanel(c.x, c.y, c.width, c.Height(len(all), len(st.Bodies)))

	x := float32(c.x + p)
	y := c.y + p
	inner := float32(c.width - 2*p)

	rl.DrawText("Overlays", int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += sectionHeader
	for _, desc := range all {
		label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		on := overlays.IsEnabled(desc.ID)
		if got := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 14, Height: 14}, label, on); got != on {
			overlays.SetEnabled(desc.ID, got)
		}
		y += rowHeight
	}

	rl.DrawText(fmt.Sprintf("Speed  x%s", FormatSpeed(st.Speed)), int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += sectionHeader
	exp := float32(SpeedExponent(st.Speed))
	got := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: float32(y), Width: inner - 60, Height: 16},
		"slow", "fast",
		exp, minSpeedExp, maxSpeedExp,
	)
	if got != exp {
		act.Speed = SpeedFromExponent(float64(got))
		act.SpeedChanged = true
	}
	y += rowHeight + 8

	half := (inner - 6) / 2
	pauseText := "Pause"
	if st.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 20}, pauseText) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 20}, "Reset view") {
		act.ResetCamera = true
	}
	y += rowHeight

	rl.DrawText("Focus [Tab / 0-9]", int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += sectionHeader
	btnW := (inner - float32(focusColumns-1)*4) / focusColumns
	for i, b := range st.Bodies {
		col, row := i%focusColumns, i/focusColumns
		bounds := rl.Rectangle{
			X:      x + float32(col)*(btnW+4),
			Y:      float32(y + int32(row)*(focusBtnH+4)),
			Width:  btnW,
			Height: focusBtnH,
		}
		text := b.Name
		if b.Index == st.Focused {
			text = "> " + b.Name
		}
		if gui.Button(bounds, text) {
			act.Focus = b.Index
		}
	}
	return act
}

// SpeedExponent maps a multiplier to its slider position, clamped to range.
func SpeedExponent(speed float64) float64 {
	if speed <= 0 {
		return minSpeedExp
	}
	return min(max(math.Log2(speed), minSpeedExp), maxSpeedExp)
}

// SpeedFromExponent maps a slider position to a multiplier, snapped to a
// quarter step so the label stays readable.
func SpeedFromExponent(exp float64) float64 {
	exp = min(max(exp, minSpeedExp), maxSpeedExp)
	return math.Pow(2, math.Round(exp*4)/4)
}

// FormatSpeed prints a multiplier compactly.
func FormatSpeed(speed float64) string {
	switch {
	case speed >= 10:
		return fmt.Sprintf("%.0f", speed)
	case speed >= 1:
		return fmt.Sprintf("%.1f", speed)
	default:
		return fmt.Sprintf("%.2f", speed)
	}
}
