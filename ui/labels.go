package ui

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/vecmath"
)

// LabelItem is a body name anchored to its projected centre.
type LabelItem struct {
	Text    string
	Screen  vecmath.ScreenPoint
	Radius  float32 // on-screen radius in pixels
	Focused bool
}

// PlacedLabel is a label position in pixels.
type PlacedLabel struct {
	Text    string
	X, Y    int32
	W       int32
	Focused bool
}

// Labels lays out and draws body names.
type Labels struct {
	renderer *Renderer
	size     int32
	placed   []PlacedLabel
}

// NewLabels creates a label layer with the given font size.
func NewLabels(size int32) *Labels {
	if size <= 0 {
		size = 12
	}
	return &Labels{renderer: NewRenderer(), size: size}
}

// Place positions labels just above each body. Bodies behind the camera or
// off screen are dropped, and nearer labels are placed first so a farther
// one sitting on top of them is skipped. The result is reused between calls.
func (l *Labels) Place(items []LabelItem, width, height float32, measure func(string) int32) []PlacedLabel {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Focused != items[j].Focused {
			return items[i].Focused
		}
		return items[i].Screen.Depth < items[j].Screen.Depth
	})

	l.placed = l.placed[:0]
	for _, it := range items {
		s := it.Screen
		if !s.Visible || s.X < 0 || s.Y < 0 || s.X > width || s.Y > height {
			continue
		}
		w := measure(it.Text)
		x := int32(s.X) - w/2
		y := int32(s.Y-it.Radius) - l.size - 2
		if !it.Focused && l.overlaps(x, y, w) {
			continue
		}
		l.placed = append(l.placed, PlacedLabel{Text: it.Text, X: x, Y: y, W: w, Focused: it.Focused})
	}
	return l.placed
}

func (l *Labels) overlaps(x, y, w int32) bool {
	for _, p := range l.placed {
		if y+l.size <= p.Y || p.Y+l.size <= y {
			continue
		}
		if x < p.X+p.W && p.X < x+w {
			return true
		}
	}
	return false
}

// Draw renders the labels placed by the last Place call.
func (l *Labels) Draw() {
	t := l.renderer.Theme
	for _, p := range l.placed {
		color := t.LabelText
		if p.Focused {
			color = t.LabelFocus
		}
		rl.DrawText(p.Text, p.X, p.Y, l.size, color)
	}
}

// MeasureFunc returns a text measure using raylib's default font.
func (l *Labels) MeasureFunc() func(string) int32 {
	return func(s string) int32 { return rl.MeasureText(s, l.size) }
}
