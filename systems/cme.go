package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/renderer"
)

// CMEParticle is one plasma particle thrown off the sun.
type CMEParticle struct {
	Pos  mgl32.Vec3
	Vel  mgl32.Vec3
	Life float32 // 1 at birth, removed at 0
	Size float32
}

// CMESystem emits bursts of particles from random points on the sun's
// surface and retires them as their life runs out.
type CMESystem struct {
	Particles []CMEParticle
	Sprites   renderer.Sprites

	cfg       config.CMEConfig
	rng       *rand.Rand
	sunRadius float32
	timer     float64 // seconds until the next burst

	Bursts    int // bursts emitted so far
	Truncated int // particles dropped at the cap
}

// NewCMESystem creates a particle system with an armed burst timer.
func NewCMESystem(cfg config.CMEConfig, sunRadius float32, rng *rand.Rand) *CMESystem {
	capacity := max(cfg.MaxParticles, 0)
	s := &CMESystem{
		Particles: make([]CMEParticle, 0, capacity),
		Sprites: renderer.Sprites{
			Positions: make([]float32, 3*capacity),
			Sizes:     make([]float32, capacity),
			Alphas:    make([]float32, capacity),
			Color:     cfg.Color.Vec4(),
		},
		cfg:       cfg,
		rng:       rng,
		sunRadius: sunRadius,
	}
	s.rearm()
	return s
}

// rearm schedules the next burst a random interval from now.
func (s *CMESystem) rearm() {
	lo, hi := s.cfg.IntervalMin, s.cfg.IntervalMax
	s.timer = lo + s.rng.Float64()*max(hi-lo, 0)
}

// Timer returns the seconds remaining until the next burst.
func (s *CMESystem) Timer() float64 {
	return s.timer
}

// Spawn emits one burst at a random surface point and returns how many
// particles were added. Particles beyond the cap are dropped.
func (s *CMESystem) Spawn() int {
	s.Bursts++

	// Uniform point on the sphere.
	theta := s.rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*s.rng.Float64() - 1)
	dir := mgl32.Vec3{
		float32(math.Sin(phi) * math.Cos(theta)),
		float32(math.Cos(phi)),
		float32(math.Sin(phi) * math.Sin(theta)),
	}
	origin := dir.Mul(s.sunRadius)

	count := s.cfg.MinPerBurst + s.rng.Intn(max(s.cfg.MaxPerBurst-s.cfg.MinPerBurst, 0)+1)
	spread := float32(s.cfg.Spread)
	added := 0
	for i := 0; i < count; i++ {
		if len(s.Particles) >= s.cfg.MaxParticles {
			s.Truncated += count - i
			break
		}

		jitter := mgl32.Vec3{
			(s.rng.Float32()*2 - 1) * spread,
			(s.rng.Float32()*2 - 1) * spread,
			(s.rng.Float32()*2 - 1) * spread,
		}
		heading := dir.Add(jitter)
		if heading.Len() < 1e-6 {
			heading = dir
		}
		speed := s.cfg.SpeedMin + s.rng.Float64()*max(s.cfg.SpeedMax-s.cfg.SpeedMin, 0)
		size := s.cfg.SizeMin + s.rng.Float64()*max(s.cfg.SizeMax-s.cfg.SizeMin, 0)

		s.Particles = append(s.Particles, CMEParticle{
			Pos:  origin,
			Vel:  heading.Normalize().Mul(float32(speed)),
			Life: 1,
			Size: float32(size),
		})
		added++
	}
	return added
}

// Update advances particles by dt seconds, drops the expired ones, fires a
// burst when the timer runs out and rewrites the sprite buffers.
func (s *CMESystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	step := float32(dt * s.cfg.SpeedMultiplier)
	decay := float32(dt * s.cfg.DecayRate)

	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life -= decay
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(step))

		s.Particles[alive] = *p
		alive++
	}
	s.Particles = s.Particles[:alive]

	s.timer -= dt
	if s.timer <= 0 {
		s.Spawn()
		s.rearm()
	}

	s.fill()
}

// fill copies particle state into the sprite buffers without reallocating.
func (s *CMESystem) fill() {
	alpha := s.Sprites.Color[3]
	for i := range s.Particles {
		p := &s.Particles[i]
		s.Sprites.Positions[3*i] = p.Pos[0]
		s.Sprites.Positions[3*i+1] = p.Pos[1]
		s.Sprites.Positions[3*i+2] = p.Pos[2]
		s.Sprites.Sizes[i] = p.Size
		s.Sprites.Alphas[i] = alpha * p.Life
	}
	s.Sprites.Count = len(s.Particles)
}

// Count returns the current number of active particles.
func (s *CMESystem) Count() int {
	return len(s.Particles)
}
