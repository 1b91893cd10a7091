package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/geometry"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/telemetry"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

type recordingUploader struct {
	meshes []geometry.Mesh
	paths  []geometry.Path
}

func (u *recordingUploader) UploadMesh(m geometry.Mesh) renderer.MeshHandle {
	u.meshes = append(u.meshes, m)
	return renderer.MeshHandle(len(u.meshes) - 1)
}

func (u *recordingUploader) UploadPath(p geometry.Path) renderer.PathHandle {
	u.paths = append(u.paths, p)
	return renderer.PathHandle(len(u.paths) - 1)
}

type recordingRegistry struct {
	names map[string]string
}

func (r *recordingRegistry) Register(name, file string) renderer.TextureSlot {
	if file == "" {
		return renderer.NoTexture
	}
	r.names[name] = file
	return renderer.TextureSlot(len(r.names))
}

func TestSceneFocusOrder(t *testing.T) {
	cfg := loadDefaults(t)
	s := NewScene(cfg, 1)

	if got, want := s.FocusCount(), len(cfg.Derived.FocusOrder); got != want {
		t.Fatalf("focus count = %d, want %d", got, want)
	}
	for i, name := range cfg.Derived.FocusOrder {
		if got := s.Name(i); got != name {
			t.Errorf("focus %d = %s, want %s", i, got, name)
		}
		e, _ := s.FocusEntity(i)
		if got := s.FocusIndex(e); got != i {
			t.Errorf("%s FocusIndex = %d, want %d", name, got, i)
		}
	}
	if s.Name(-1) != "none" || s.Name(s.FocusCount()) != "none" {
		t.Error("out of range focus should have no name")
	}
	if pos, radius, ok := s.FocusTarget(0); !ok || pos != (mgl32.Vec3{}) || radius != float32(cfg.Bodies.Sun.Radius) {
		t.Errorf("sun target = %v %v %v", pos, radius, ok)
	}
}

func TestSceneStep(t *testing.T) {
	cfg := loadDefaults(t)
	s := NewScene(cfg, 1)
	perf := telemetry.NewPerfCollector(4)

	before, _, _ := s.FocusTarget(3) // Earth
	perf.StartTick()
	s.Step(1, perf)
	perf.EndTick()

	if s.Time() != 1 {
		t.Errorf("time = %v, want 1", s.Time())
	}
	after, _, _ := s.FocusTarget(3)
	if before == after {
		t.Error("Earth did not move")
	}
	if pos, _, _ := s.FocusTarget(0); pos != (mgl32.Vec3{}) {
		t.Errorf("sun moved to %v", pos)
	}
}

func TestUploadGeometry(t *testing.T) {
	cfg := loadDefaults(t)
	s := NewScene(cfg, 1)
	up := &recordingUploader{}
	s.Upload(up, cfg.Geometry)

	// sphere + Saturn's two bands + Uranus's one band
	if len(up.meshes) != 4 {
		t.Errorf("uploaded %d meshes, want 4", len(up.meshes))
	}
	if len(up.paths) != len(cfg.Bodies.Planets) {
		t.Errorf("uploaded %d paths, want one per planet", len(up.paths))
	}
	if s.Sphere() != 0 {
		t.Errorf("sphere handle = %d, want the first upload", s.Sphere())
	}
}

func TestRegisterTextures(t *testing.T) {
	cfg := loadDefaults(t)
	s := NewScene(cfg, 1)
	reg := &recordingRegistry{names: map[string]string{}}
	s.RegisterTextures(cfg, reg)

	for name, file := range map[string]string{
		"sun":         "sun.jpg",
		"earth":       "earth_day.jpg",
		"earthClouds": "earth_clouds.jpg",
		"earthNight":  "earth_night.jpg",
		"moon":        "moon.jpg",
		"saturnRing0": "saturn_ring.png",
	} {
		if got := reg.names[name]; got != file {
			t.Errorf("slot %s = %q, want %q", name, got, file)
		}
	}
	if _, ok := reg.names["saturnRing1"]; ok {
		t.Error("untextured ring was registered")
	}
	if _, ok := reg.names["phobos"]; ok {
		t.Error("untextured moon was registered")
	}
}

func TestSlotBase(t *testing.T) {
	tests := map[string]string{"Earth": "earth", "Halley Comet": "halleyComet", "": ""}
	for in, want := range tests {
		if got := slotBase(in); got != want {
			t.Errorf("slotBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func newFrameScene(t *testing.T) (*config.Config, *Scene, *camera.Camera) {
	t.Helper()
	cfg := loadDefaults(t)
	s := NewScene(cfg, 1)
	s.Upload(&recordingUploader{}, cfg.Geometry)
	return cfg, s, camera.New(cameraOptions(cfg))
}

func TestBuildFrameOccluders(t *testing.T) {
	cfg, s, cam := newFrameScene(t)
	var f renderer.Frame
	s.BuildFrame(&f, cam, Layers{})

	if len(f.Suns) != 1 || !f.Suns[0].Emissive {
		t.Fatalf("suns = %+v", f.Suns)
	}
	if len(f.Planets) != len(cfg.Bodies.Planets) {
		t.Fatalf("planets = %d", len(f.Planets))
	}

	earth := f.Planets[2]
	if earth.Body.Shadow.OccluderCount != 1 || len(earth.Moons) != 1 {
		t.Fatalf("earth occluders = %d, moons = %d", earth.Body.Shadow.OccluderCount, len(earth.Moons))
	}
	moonPos, moonRadius, _ := s.FocusTarget(4)
	if got := earth.Body.Shadow.Occluders[0]; got != moonPos.Vec4(moonRadius) {
		t.Errorf("earth occluder = %v, want moon %v r=%v", got, moonPos, moonRadius)
	}

	earthPos, earthRadius, _ := s.FocusTarget(3)
	moon := earth.Moons[0]
	if !moon.Shadow.HasParent || moon.Shadow.Parent != earthPos.Vec4(earthRadius) {
		t.Errorf("moon parent occluder = %v %v", moon.Shadow.Parent, moon.Shadow.HasParent)
	}
	if moon.Shadow.OccluderCount != 0 {
		t.Errorf("moon has %d sibling occluders", moon.Shadow.OccluderCount)
	}

	if mercury := f.Planets[0]; mercury.Body.Shadow.OccluderCount != 0 || mercury.HasSpot || len(mercury.Rings) != 0 {
		t.Errorf("mercury should have no features: %+v", mercury)
	}
	if jupiter := f.Planets[4]; !jupiter.HasSpot || jupiter.Body.Shadow.OccluderCount != renderer.MaxOccluders {
		t.Errorf("jupiter spot=%v occluders=%d", jupiter.HasSpot, jupiter.Body.Shadow.OccluderCount)
	}
	if saturn := f.Planets[5]; len(saturn.Rings) != 2 {
		t.Errorf("saturn rings = %d", len(saturn.Rings))
	}
}

func TestBuildFrameLayers(t *testing.T) {
	cfg, s, cam := newFrameScene(t)
	var f renderer.Frame

	s.BuildFrame(&f, cam, Layers{})
	if len(f.Orbits) != 0 || len(f.Belts) != 0 || f.Particles != nil {
		t.Errorf("disabled layers drawn: orbits=%d belts=%d particles=%v", len(f.Orbits), len(f.Belts), f.Particles != nil)
	}

	color := mgl32.Vec4{1, 0, 0, 1}
	s.BuildFrame(&f, cam, Layers{Orbits: true, Belts: true, CME: true, OrbitColor: color})
	if len(f.Orbits) != len(cfg.Bodies.Planets) || f.Orbits[0].Color != color {
		t.Errorf("orbits = %+v", f.Orbits)
	}
	if len(f.Belts) != 2 || f.Belts[0].Count != cfg.Belts.Asteroid.Count {
		t.Errorf("belts = %d", len(f.Belts))
	}
	if f.Particles == nil {
		t.Error("CME layer missing")
	}

	// A rebuild reuses the planet entries without growing their nested lists.
	s.BuildFrame(&f, cam, Layers{})
	if n := len(f.Planets[4].Moons); n != 4 {
		t.Errorf("jupiter moons after rebuild = %d, want 4", n)
	}
	if n := f.Planets[2].Body.Shadow.OccluderCount; n != 1 {
		t.Errorf("earth occluders after rebuild = %d", n)
	}
}

func TestPositions(t *testing.T) {
	cfg := loadDefaults(t)
	s := NewScene(cfg, 1)
	recs := s.Positions(7, nil)
	if len(recs) != s.FocusCount() {
		t.Fatalf("records = %d", len(recs))
	}
	if recs[0].Body != cfg.Bodies.Sun.Name || recs[0].Kind != "sun" || recs[0].Tick != 7 {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[4].Kind != "moon" {
		t.Errorf("record 4 kind = %s, want moon", recs[4].Kind)
	}
}

func TestNextFocus(t *testing.T) {
	tests := []struct{ cur, step, n, want int }{
		{camera.NoFocus, 1, 5, 0},
		{camera.NoFocus, -1, 5, 4},
		{0, 1, 5, 1},
		{4, 1, 5, 0},
		{0, -1, 5, 4},
	}
	for _, tt := range tests {
		if got := nextFocus(tt.cur, tt.step, tt.n); got != tt.want {
			t.Errorf("nextFocus(%d, %d, %d) = %d, want %d", tt.cur, tt.step, tt.n, got, tt.want)
		}
	}
}

func TestScreenRadius(t *testing.T) {
	cam := camera.New(camera.Options{ViewportW: 800, ViewportH: 600, FovDeg: 90, Near: 0.1, Far: 100, MinZoom: 1, MaxZoom: 50, InitialZoom: 10})

	// tan(45°) = 1, so a unit sphere at distance 10 spans a tenth of the half-height.
	if got := screenRadius(cam, 10, 1); math.Abs(float64(got)-30) > 1e-3 {
		t.Errorf("screenRadius = %v, want 30", got)
	}
	if got := screenRadius(cam, 0.5, 1); got != 600 {
		t.Errorf("inside the sphere = %v, want viewport height", got)
	}
}
