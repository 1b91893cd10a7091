package backend

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/renderer"
)

func TestRegisterDedupesByName(t *testing.T) {
	s := NewTextureStore(t.TempDir())
	a := s.Register("Earth", "earth.jpg")
	b := s.Register("earthClouds", "clouds.jpg")
	if a == renderer.NoTexture || b == renderer.NoTexture || a == b {
		t.Fatalf("slots %d, %d", a, b)
	}
	if again := s.Register("Earth", "other.jpg"); again != a {
		t.Errorf("re-registering returned %d, want %d", again, a)
	}
	if none := s.Register("Mars", ""); none != renderer.NoTexture {
		t.Errorf("empty file gave slot %d", none)
	}
	if s.Pending() != 2 {
		t.Errorf("pending = %d, want 2", s.Pending())
	}
}

func TestMissingFileKeepsPlaceholder(t *testing.T) {
	s := NewTextureStore(filepath.Join(t.TempDir(), "absent"))
	slot := s.Register("Moon", "moon.jpg")
	s.placeholder.ID = 7

	if got := s.Texture(slot); got != 7 {
		t.Fatalf("unloaded slot bound %d, want placeholder", got)
	}
	if !s.LoadNext() {
		t.Fatal("LoadNext reported nothing to do")
	}
	if s.LoadNext() {
		t.Error("second LoadNext should report done")
	}
	if s.slots[slot].state != slotFailed {
		t.Errorf("state = %d, want failed", s.slots[slot].state)
	}
	if got := s.Texture(slot); got != 7 {
		t.Errorf("failed slot bound %d, want placeholder", got)
	}
	if got := s.Texture(renderer.NoTexture); got != 7 {
		t.Errorf("NoTexture bound %d", got)
	}
	if got := s.Texture(99); got != 7 {
		t.Errorf("unknown slot bound %d", got)
	}
}

func TestToMatrixLayout(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(4, 5, 6))
	r := toMatrix(m)
	if r.M12 != 1 || r.M13 != 2 || r.M14 != 3 {
		t.Errorf("translation in M12..M14 = %f %f %f", r.M12, r.M13, r.M14)
	}
	if r.M0 != 4 || r.M5 != 5 || r.M10 != 6 || r.M15 != 1 {
		t.Errorf("diagonal = %f %f %f %f", r.M0, r.M5, r.M10, r.M15)
	}
}

func TestToColorClamps(t *testing.T) {
	c := toColor(mgl32.Vec4{-1, 0.5, 2, 1})
	if c.R != 0 || c.G != 127 || c.B != 255 || c.A != 255 {
		t.Errorf("color = %+v", c)
	}
}
