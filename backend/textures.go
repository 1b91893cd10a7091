package backend

import (
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/renderer"
)

type slotState uint8

const (
	slotPending slotState = iota
	slotLoaded
	slotFailed
)

type textureSlot struct {
	name  string
	file  string
	tex   rl.Texture2D
	state slotState
}

// TextureStore maps logical slot names to textures. Every slot answers with
// a 1x1 neutral placeholder until its image has been decoded; LoadNext
// decodes one image per call so loading never stalls a frame for long.
// Failed loads keep the placeholder.
type TextureStore struct {
	dir         string
	slots       []textureSlot // index 0 is renderer.NoTexture
	byName      map[string]renderer.TextureSlot
	next        int
	placeholder rl.Texture2D
}

// NewTextureStore creates a store resolving files under dir. Slots may be
// registered before the window exists.
func NewTextureStore(dir string) *TextureStore {
	return &TextureStore{
		dir:    dir,
		slots:  make([]textureSlot, 1),
		byName: map[string]renderer.TextureSlot{},
		next:   1,
	}
}

// Register returns the slot for name, creating it on first use. An empty
// file means the layer has no texture.
func (s *TextureStore) Register(name, file string) renderer.TextureSlot {
	if file == "" {
		return renderer.NoTexture
	}
	if slot, ok := s.byName[name]; ok {
		return slot
	}
	s.slots = append(s.slots, textureSlot{name: name, file: file})
	slot := renderer.TextureSlot(len(s.slots) - 1)
	s.byName[name] = slot
	return slot
}

// Init creates the placeholder. Requires an open window.
func (s *TextureStore) Init() {
	img := rl.GenImageColor(1, 1, rl.Color{R: 128, G: 128, B: 128, A: 255})
	s.placeholder = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

// Pending reports how many slots are still waiting to load.
func (s *TextureStore) Pending() int {
	return len(s.slots) - s.next
}

// LoadNext decodes the next pending slot. It reports false when nothing is
// left to load.
func (s *TextureStore) LoadNext() bool {
	if s.next >= len(s.slots) {
		return false
	}
	slot := &s.slots[s.next]
	s.next++

	path := filepath.Join(s.dir, slot.file)
	if _, err := os.Stat(path); err != nil {
		slot.state = slotFailed
		slog.Warn("texture load failed", "slot", slot.name, "path", path, "error", err)
		return true
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		slot.state = slotFailed
		slog.Warn("texture load failed", "slot", slot.name, "path", path, "error", "decode failed")
		return true
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	slot.tex = tex
	slot.state = slotLoaded
	slog.Debug("texture loaded", "slot", slot.name, "width", tex.Width, "height", tex.Height)
	return true
}

// Texture implements renderer.Textures.
func (s *TextureStore) Texture(slot renderer.TextureSlot) renderer.Texture {
	if slot > 0 && int(slot) < len(s.slots) && s.slots[slot].state == slotLoaded {
		return renderer.Texture(s.slots[slot].tex.ID)
	}
	return renderer.Texture(s.placeholder.ID)
}

// Unload frees every loaded texture and the placeholder.
func (s *TextureStore) Unload() {
	for i := range s.slots {
		if s.slots[i].state == slotLoaded {
			rl.UnloadTexture(s.slots[i].tex)
			s.slots[i].state = slotPending
		}
	}
	rl.UnloadTexture(s.placeholder)
}

var _ renderer.Textures = (*TextureStore)(nil)
