package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/orbit"
)

type scene struct {
	world      *ecs.World
	primaries  *ecs.Map4[components.Body, components.Orbit, components.Transform, components.Primary]
	satellites *ecs.Map4[components.Body, components.Orbit, components.Transform, components.Satellite]
	transforms *ecs.Map[components.Transform]
}

func newScene() *scene {
	w := ecs.NewWorld()
	return &scene{
		world:      w,
		primaries:  ecs.NewMap4[components.Body, components.Orbit, components.Transform, components.Primary](w),
		satellites: ecs.NewMap4[components.Body, components.Orbit, components.Transform, components.Satellite](w),
		transforms: ecs.NewMap[components.Transform](w),
	}
}

func (s *scene) planet(radius, tilt float64, o orbit.Orbit) ecs.Entity {
	body := components.Body{Kind: components.KindPlanet, Radius: float32(radius), TiltDeg: tilt, RotationSpeed: 1}
	orb := components.Orbit{Params: o}
	tr := components.Transform{}
	p := components.Primary{}
	return s.primaries.NewEntity(&body, &orb, &tr, &p)
}

func (s *scene) moon(parent ecs.Entity, o orbit.Orbit, pl orbit.Placement, lock bool) ecs.Entity {
	body := components.Body{Kind: components.KindMoon, Radius: 0.2, RotationSpeed: 3}
	orb := components.Orbit{Params: o}
	tr := components.Transform{}
	sat := components.Satellite{Parent: parent, Placement: pl, TidalLock: lock}
	return s.satellites.NewEntity(&body, &orb, &tr, &sat)
}

func approx(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}

func TestOrbitSystemQuarterPeriod(t *testing.T) {
	sc := newScene()
	e := sc.planet(1, 0, orbit.Orbit{Radius: 10, Speed: 10})
	sys := NewOrbitSystem(sc.world, 1, 1)

	sys.Update(0)
	if got := sc.transforms.Get(e).Position; !approx(got, mgl32.Vec3{10, 0, 0}) {
		t.Errorf("t=0 position %v", got)
	}

	quarter := math.Pi / 2 / 10
	sys.Update(quarter)
	tr := sc.transforms.Get(e)
	if !approx(tr.Position, mgl32.Vec3{0, 0, 10}) {
		t.Errorf("quarter period position %v", tr.Position)
	}
	if math.Abs(float64(tr.Distance)-10) > 1e-5 {
		t.Errorf("distance %f", tr.Distance)
	}
	if got := tr.Model.Col(3).Vec3(); !approx(got, tr.Position) {
		t.Errorf("model translation %v, want %v", got, tr.Position)
	}
}

func TestOrbitSystemSunStaysAtOrigin(t *testing.T) {
	sc := newScene()
	sun := sc.planet(5, 0, orbit.Orbit{})
	sys := NewOrbitSystem(sc.world, 1, 1)
	for _, tm := range []float64{0, 3, 100} {
		sys.Update(tm)
		if p := sc.transforms.Get(sun).Position; p != (mgl32.Vec3{}) {
			t.Fatalf("sun moved to %v at t=%f", p, tm)
		}
	}
}

func TestOrbitSystemMoonFollowsParent(t *testing.T) {
	sc := newScene()
	planet := sc.planet(1, 23.44, orbit.Orbit{Radius: 20, Speed: 1, StartAngle: 0.3})
	moon := sc.moon(planet, orbit.Orbit{Radius: 2, Speed: 5}, orbit.Placement{Mode: orbit.Ecliptic}, true)
	sys := NewOrbitSystem(sc.world, 0.5, 1)

	for _, tm := range []float64{0, 1.7, 12.25} {
		sys.Update(tm)
		p := sc.transforms.Get(planet).Position
		m := sc.transforms.Get(moon)
		if d := m.Position.Sub(p).Len(); math.Abs(float64(d)-2) > 1e-4 {
			t.Errorf("t=%f: moon %f from parent, want 2", tm, d)
		}
		if m.Position[1] != p[1] {
			t.Errorf("t=%f: ecliptic moon left the parent plane", tm)
		}
		if want := orbit.TidalLockAngle(m.OrbitAngle); m.Spin != want {
			t.Errorf("t=%f: tidal lock spin %f, want %f", tm, m.Spin, want)
		}
	}
}

func TestOrbitSystemSpin(t *testing.T) {
	sc := newScene()
	planet := sc.planet(1, 0, orbit.Orbit{Radius: 5, Speed: 1})
	free := sc.moon(planet, orbit.Orbit{Radius: 2, Speed: 5}, orbit.Placement{Mode: orbit.InheritedTilt}, false)
	sys := NewOrbitSystem(sc.world, 1, 2)

	sys.Update(3)
	if got := sc.transforms.Get(planet).Spin; got != 6 {
		t.Errorf("planet spin %f, want 6", got)
	}
	if got := sc.transforms.Get(free).Spin; got != 18 {
		t.Errorf("moon spin %f, want 18", got)
	}
}

func beltConfig() config.BeltConfig {
	return config.BeltConfig{
		Inner: 30, Outer: 40, Thickness: 2, Count: 500,
		BaseSpeed: 0.3, Color: config.RGBA{0.5, 0.5, 0.5, 0.8}, PointSize: 0.2,
	}
}

func TestBeltFieldBounds(t *testing.T) {
	f := NewBeltField(beltConfig(), 1, rand.New(rand.NewSource(1)))
	if f.Count() != 500 || len(f.Sprites.Positions) != 1500 {
		t.Fatalf("count %d, positions %d", f.Count(), len(f.Sprites.Positions))
	}
	for _, tm := range []float64{0, 10, 1e4} {
		f.Update(tm)
		for i := 0; i < f.Count(); i++ {
			x, y, z := f.Sprites.Positions[3*i], f.Sprites.Positions[3*i+1], f.Sprites.Positions[3*i+2]
			r := math.Hypot(float64(x), float64(z))
			if r < 30-1e-3 || r > 40+1e-3 {
				t.Fatalf("member %d at radius %f", i, r)
			}
			if math.Abs(float64(y)) > 1 {
				t.Fatalf("member %d at height %f", i, y)
			}
		}
	}
	for i, a := range f.Sprites.Alphas {
		if a <= 0 || a > 0.8 {
			t.Fatalf("alpha %d = %f", i, a)
		}
	}
}

func TestBeltFieldReusesBuffers(t *testing.T) {
	f := NewBeltField(beltConfig(), 1, rand.New(rand.NewSource(2)))
	before := &f.Sprites.Positions[0]
	first := f.Sprites.Positions[0]
	f.Update(5)
	if &f.Sprites.Positions[0] != before {
		t.Error("positions reallocated")
	}
	if f.Sprites.Positions[0] == first {
		t.Error("positions not rewritten")
	}
}

func TestBeltFieldInnerFaster(t *testing.T) {
	f := NewBeltField(beltConfig(), 1, rand.New(rand.NewSource(3)))
	for i := range f.radius {
		for j := range f.radius {
			if f.radius[i] < f.radius[j] && f.speed[i] < f.speed[j] {
				t.Fatalf("member at %f slower than member at %f", f.radius[i], f.radius[j])
			}
		}
	}
}

func cmeConfig() config.CMEConfig {
	return config.CMEConfig{
		MinPerBurst: 20, MaxPerBurst: 50, MaxParticles: 120,
		SpeedMultiplier: 3, DecayRate: 0.5,
		IntervalMin: 2, IntervalMax: 6,
		Spread: 0.3, SpeedMin: 0.8, SpeedMax: 1.6, SizeMin: 0.1, SizeMax: 0.4,
		Color: config.RGBA{1, 0.5, 0.2, 0.8},
	}
}

func TestCMEBurstSize(t *testing.T) {
	s := NewCMESystem(cmeConfig(), 5, rand.New(rand.NewSource(4)))
	for range 20 {
		s.Particles = s.Particles[:0]
		n := s.Spawn()
		if n < 20 || n > 50 {
			t.Fatalf("burst of %d, want 20..50", n)
		}
		for _, p := range s.Particles {
			if d := p.Pos.Len(); math.Abs(float64(d)-5) > 1e-4 {
				t.Fatalf("particle born %f from centre, want surface", d)
			}
			if p.Life != 1 {
				t.Fatalf("initial life %f", p.Life)
			}
			if p.Size < 0.1 || p.Size > 0.4 {
				t.Fatalf("size %f", p.Size)
			}
			// Roughly radial: spread never flips the velocity inward.
			if p.Vel.Dot(p.Pos) <= 0 {
				t.Fatalf("particle heading inward: vel %v pos %v", p.Vel, p.Pos)
			}
		}
	}
}

func TestCMECapNeverExceeded(t *testing.T) {
	s := NewCMESystem(cmeConfig(), 5, rand.New(rand.NewSource(5)))
	for range 50 {
		s.Spawn()
		if s.Count() > 120 {
			t.Fatalf("count %d above cap", s.Count())
		}
	}
	if s.Truncated == 0 {
		t.Error("expected truncated spawns")
	}
	for range 200 {
		s.Update(0.1)
		if s.Count() > 120 {
			t.Fatalf("count %d above cap after update", s.Count())
		}
	}
}

func TestCMELifeStrictlyDecreases(t *testing.T) {
	s := NewCMESystem(cmeConfig(), 5, rand.New(rand.NewSource(6)))
	s.Spawn()
	s.timer = 1e9 // no further bursts

	prev := s.Particles[0].Life
	ticks := 0
	for s.Count() > 0 {
		s.Update(0.1)
		ticks++
		if s.Count() == 0 {
			break
		}
		if life := s.Particles[0].Life; life >= prev {
			t.Fatalf("life went from %f to %f", prev, life)
		} else {
			prev = life
		}
		for _, p := range s.Particles {
			if p.Life <= 0 {
				t.Fatalf("expired particle kept with life %f", p.Life)
			}
		}
		if ticks > 100 {
			t.Fatal("particles never expired")
		}
	}
	// Life 1 decaying at 0.05 per tick is gone on the 20th tick.
	if ticks < 19 || ticks > 21 {
		t.Errorf("expired after %d ticks", ticks)
	}
}

func TestCMETimerRearms(t *testing.T) {
	s := NewCMESystem(cmeConfig(), 5, rand.New(rand.NewSource(7)))
	if tm := s.Timer(); tm < 2 || tm > 6 {
		t.Fatalf("initial timer %f", tm)
	}
	for s.Bursts == 0 {
		s.Update(0.25)
	}
	if tm := s.Timer(); tm < 2 || tm > 6 {
		t.Errorf("re-armed timer %f", tm)
	}
	if s.Count() == 0 {
		t.Error("timer fired without a burst")
	}
}

func TestCMESpritesMirrorParticles(t *testing.T) {
	s := NewCMESystem(cmeConfig(), 5, rand.New(rand.NewSource(8)))
	s.Spawn()
	s.Update(0.2)
	if s.Sprites.Count != s.Count() {
		t.Fatalf("sprite count %d, particles %d", s.Sprites.Count, s.Count())
	}
	p := s.Particles[0]
	if s.Sprites.Positions[0] != p.Pos[0] || s.Sprites.Alphas[0] != 0.8*p.Life {
		t.Errorf("sprite 0 = (%f, alpha %f), particle %v life %f", s.Sprites.Positions[0], s.Sprites.Alphas[0], p.Pos, p.Life)
	}
}

func TestCMEPausedDoesNothing(t *testing.T) {
	s := NewCMESystem(cmeConfig(), 5, rand.New(rand.NewSource(9)))
	s.Spawn()
	before := s.Particles[0]
	timer := s.Timer()
	s.Update(0)
	if s.Particles[0] != before || s.Timer() != timer {
		t.Error("zero dt changed state")
	}
}
