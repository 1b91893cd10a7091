package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/config"
)

// OverlayID uniquely identifies a toggleable layer.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayOrbits    OverlayID = "orbits"
	OverlayBelts     OverlayID = "belts"
	OverlayCME       OverlayID = "cme"
	OverlayLabels    OverlayID = "labels"
	OverlayInspector OverlayID = "inspector"
	OverlayControls  OverlayID = "controls"
	OverlayPerf      OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID // Unique identifier
	Name     string    // Display name
	Key      int32     // Keyboard key to toggle (0 = no key)
	KeyLabel string    // Key label for display (e.g., "O")
	Category string    // "scene" or "panels"
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays, initially
// enabled as the render config says.
func NewOverlayRegistry(rc config.RenderConfig) *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.enabled[OverlayOrbits] = rc.ShowOrbits
	reg.enabled[OverlayBelts] = rc.ShowBelts
	reg.enabled[OverlayCME] = rc.ShowCME
	reg.enabled[OverlayLabels] = rc.ShowLabels
	reg.enabled[OverlayInspector] = true
	reg.enabled[OverlayControls] = true
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{ID: OverlayOrbits, Name: "Orbit paths", Key: rl.KeyO, KeyLabel: "O", Category: "scene"})
	r.Register(OverlayDescriptor{ID: OverlayBelts, Name: "Belts", Key: rl.KeyB, KeyLabel: "B", Category: "scene"})
	r.Register(OverlayDescriptor{ID: OverlayCME, Name: "Solar ejections", Key: rl.KeyC, KeyLabel: "C", Category: "scene"})
	r.Register(OverlayDescriptor{ID: OverlayLabels, Name: "Labels", Key: rl.KeyL, KeyLabel: "L", Category: "scene"})
	r.Register(OverlayDescriptor{ID: OverlayInspector, Name: "Inspector", Key: rl.KeyI, KeyLabel: "I", Category: "panels"})
	r.Register(OverlayDescriptor{ID: OverlayControls, Name: "Controls", Key: rl.KeyH, KeyLabel: "H", Category: "panels"})
	r.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Performance", Key: rl.KeyF3, KeyLabel: "F3", Category: "panels"})
}

// Register adds an overlay to the registry, initially disabled.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; !ok {
		r.descriptors = append(r.descriptors, desc)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
