package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+110, y, 14, ColorText)
	return 18
}

// DrawAngle renders a dial for an angle in radians. The needle turns
// counter-clockwise like the orbit it describes.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	const size = int32(28)
	centerX := x + 110 + size/2
	centerY := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	needle := float64(size/2 - 3)
	endX := float32(centerX) + float32(needle*math.Cos(radians))
	endY := float32(centerY) - float32(needle*math.Sin(radians))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	rl.DrawText(fmt.Sprintf("%.0f°", WrapDegrees(radians)), x+110+size+6, y+size/2-7, 14, ColorText)
	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	const indicator = int32(12)
	color, text := ColorBoolOff, "off"
	if value {
		color, text = ColorBoolOn, "on"
	}
	rl.DrawRectangle(x+110, y+1, indicator, indicator, color)
	rl.DrawText(text, x+110+indicator+6, y, 14, color)
	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}

// fieldHeight mirrors the height each Draw function reports.
func fieldHeight(f Field) int32 {
	if f.Widget == WidgetAngle {
		if _, ok := GetFloatValue(f.Value); ok {
			return 32
		}
	}
	return 18
}
