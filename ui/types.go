// Package ui draws the 2D layer over the scene: heads-up text, body labels,
// the raygui control panel and the perf panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	LabelText      rl.Color
	LabelFocus     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 14, G: 16, B: 24, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 66, B: 84, A: 255},
		SectionHeader:  rl.Color{R: 240, G: 200, B: 110, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		LabelText:      rl.Color{R: 190, G: 200, B: 220, A: 200},
		LabelFocus:     rl.Color{R: 255, G: 220, B: 120, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
