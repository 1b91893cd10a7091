// Package inspector shows the components of the selected body in a side
// panel. Fields are discovered by reflection from `inspect` struct tags.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/vecmath"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 30
	SectionGap   = 8
	pickSlack    = 6 // pixels added to each body's screen radius when picking
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 20, G: 22, B: 30, A: 230}
	ColorPanelHeader = rl.Color{R: 40, G: 44, B: 58, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 74, B: 90, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 54, B: 70, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 205, B: 225, A: 255}
)

// Target is a pickable body on screen.
type Target struct {
	Entity ecs.Entity
	Screen vecmath.ScreenPoint
	Radius float32 // on-screen radius in pixels
}

// Pick returns the body under (x, y). Overlapping hits resolve to the one
// nearest the camera.
func Pick(x, y float32, targets []Target) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDepth := float32(2)
	found := false
	for _, t := range targets {
		if !t.Screen.Visible {
			continue
		}
		dx, dy := x-t.Screen.X, y-t.Screen.Y
		r := t.Radius + pickSlack
		if dx*dx+dy*dy > r*r {
			continue
		}
		if t.Screen.Depth < bestDepth {
			best, bestDepth, found = t.Entity, t.Screen.Depth, true
		}
	}
	return best, found
}

// Source reads the inspectable components of a body.
type Source struct {
	bodies     *ecs.Map[components.Body]
	transforms *ecs.Map[components.Transform]
	satellites *ecs.Map[components.Satellite]
	surfaces   *ecs.Map[components.Surface]
}

// NewSource creates component accessors for w.
func NewSource(w *ecs.World) *Source {
	return &Source{
		bodies:     ecs.NewMap[components.Body](w),
		transforms: ecs.NewMap[components.Transform](w),
		satellites: ecs.NewMap[components.Satellite](w),
		surfaces:   ecs.NewMap[components.Surface](w),
	}
}

// Sections extracts the panel content for e. The title is the body name.
func (s *Source) Sections(e ecs.Entity) (string, []Section) {
	if !s.bodies.Has(e) {
		return "", nil
	}
	body := s.bodies.Get(e)
	sections := []Section{{Title: "BODY", Fields: ExtractFields(body)}}
	if s.transforms.Has(e) {
		sections = append(sections, Section{Title: "MOTION", Fields: ExtractFields(s.transforms.Get(e))})
	}
	if s.satellites.Has(e) {
		sections = append(sections, Section{Title: "SATELLITE", Fields: ExtractFields(s.satellites.Get(e))})
	}
	if s.surfaces.Has(e) {
		sections = append(sections, Section{Title: "TEXTURES", Fields: ExtractFields(s.surfaces.Get(e))})
	}
	return body.Name, sections
}

// Inspector manages body selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{panelY: 10}
	ins.Resize(screenWidth)
	return ins
}

// Resize keeps the panel anchored to the right edge.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput processes clicks. It reports whether a new body was selected.
func (ins *Inspector) HandleInput(targets []Target) bool {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return false
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}
	m := rl.GetMousePosition()
	if ins.hasSelected {
		if ins.overClose(m.X, m.Y) {
			ins.Deselect()
			return false
		}
		if ins.overPanel(m.X, m.Y) {
			return false
		}
	}
	e, ok := Pick(m.X, m.Y, targets)
	if !ok {
		return false
	}
	changed := !ins.hasSelected || e != ins.selected
	ins.Select(e)
	return changed
}

func (ins *Inspector) overClose(x, y float32) bool {
	cx := float32(ins.panelX + PanelWidth - 25)
	cy := float32(ins.panelY + 5)
	return x >= cx && x <= cx+20 && y >= cy && y <= cy+20
}

func (ins *Inspector) overPanel(x, y float32) bool {
	return x >= float32(ins.panelX) && x <= float32(ins.panelX+PanelWidth) && y >= float32(ins.panelY)
}

// Contains reports whether a screen point falls in the open panel's column.
func (ins *Inspector) Contains(x, y float32) bool {
	return ins.hasSelected && ins.overPanel(x, y)
}

// Select makes e the inspected body.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// PanelHeight is the height Draw uses for these sections.
func PanelHeight(sections []Section) int32 {
	h := int32(HeaderHeight + PanelPadding)
	for _, sec := range sections {
		h += 20
		for _, f := range sec.Fields {
			h += fieldHeight(f)
		}
		h += SectionGap
	}
	return h + PanelPadding
}

// Draw renders the panel for the selected body.
func (ins *Inspector) Draw(title string, sections []Section) {
	if !ins.hasSelected || title == "" {
		return
	}

	height := PanelHeight(sections)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(title, ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, sec := range sections {
		rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
		rl.DrawText(sec.Title, x+2, y, 14, ColorSectionText)
		y += 20
		for _, f := range sec.Fields {
			y += DrawField(x, y, f)
		}
		y += SectionGap
	}
}
