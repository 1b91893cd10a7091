package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// Scene is the simulated solar system: one entity per body plus the belt and
// CME particle fields. It never touches raylib, so headless runs and tests
// drive it directly.
type Scene struct {
	world *ecs.World
	rng   *rand.Rand

	primaryMapper *ecs.Map4[components.Body, components.Orbit, components.Transform, components.Primary]
	moonMapper    *ecs.Map4[components.Body, components.Orbit, components.Transform, components.Satellite]

	// Individual component mappers for lookups
	bodyMap      *ecs.Map[components.Body]
	orbitMap     *ecs.Map[components.Orbit]
	transformMap *ecs.Map[components.Transform]
	satelliteMap *ecs.Map[components.Satellite]
	surfaceMap   *ecs.Map[components.Surface]
	ringsMap     *ecs.Map[components.Rings]
	spotMap      *ecs.Map[components.Spot]
	moonsMap     *ecs.Map[components.Moons]

	orbits *systems.OrbitSystem
	cme    *systems.CMESystem
	belts  []*systems.BeltField // asteroid, kuiper

	sun     ecs.Entity
	planets []ecs.Entity // configuration order
	focus   []ecs.Entity // focus cycle: sun, then each planet followed by its moons

	sphere   renderer.MeshHandle
	uploaded bool

	time float64 // simulation seconds
}

// NewScene builds the body hierarchy from cfg and places every body at t=0.
func NewScene(cfg *config.Config, seed int64) *Scene {
	w := ecs.NewWorld()
	s := &Scene{
		world:         w,
		rng:           rand.New(rand.NewSource(seed)),
		primaryMapper: ecs.NewMap4[components.Body, components.Orbit, components.Transform, components.Primary](w),
		moonMapper:    ecs.NewMap4[components.Body, components.Orbit, components.Transform, components.Satellite](w),
		bodyMap:       ecs.NewMap[components.Body](w),
		orbitMap:      ecs.NewMap[components.Orbit](w),
		transformMap:  ecs.NewMap[components.Transform](w),
		satelliteMap:  ecs.NewMap[components.Satellite](w),
		surfaceMap:    ecs.NewMap[components.Surface](w),
		ringsMap:      ecs.NewMap[components.Rings](w),
		spotMap:       ecs.NewMap[components.Spot](w),
		moonsMap:      ecs.NewMap[components.Moons](w),
	}

	s.spawnBodies(cfg)

	s.orbits = systems.NewOrbitSystem(w, cfg.Simulation.TimeScale, cfg.Simulation.RotationScale)
	s.cme = systems.NewCMESystem(cfg.CME, float32(cfg.Bodies.Sun.Radius), s.rng)
	s.belts = []*systems.BeltField{
		systems.NewBeltField(cfg.Belts.Asteroid, cfg.Simulation.TimeScale, s.rng),
		systems.NewBeltField(cfg.Belts.Kuiper, cfg.Simulation.TimeScale, s.rng),
	}

	s.orbits.Update(0)
	return s
}

// Step advances the scene by dt simulation seconds, timing each system.
func (s *Scene) Step(dt float64, perf *telemetry.PerfCollector) {
	s.time += dt

	perf.StartPhase(telemetry.PhaseOrbits)
	s.orbits.Update(s.time)

	perf.StartPhase(telemetry.PhaseBelts)
	for _, b := range s.belts {
		b.Update(s.time)
	}

	perf.StartPhase(telemetry.PhaseCME)
	s.cme.Update(dt)
}

// Time returns the simulation time in seconds.
func (s *Scene) Time() float64 {
	return s.time
}

// World returns the ECS world holding the bodies.
func (s *Scene) World() *ecs.World {
	return s.world
}

// FocusCount returns the length of the focus cycle.
func (s *Scene) FocusCount() int {
	return len(s.focus)
}

// FocusEntity returns the body at focus index i.
func (s *Scene) FocusEntity(i int) (ecs.Entity, bool) {
	if i < 0 || i >= len(s.focus) {
		return ecs.Entity{}, false
	}
	return s.focus[i], true
}

// FocusTarget returns the current position and radius of the body at focus
// index i.
func (s *Scene) FocusTarget(i int) (pos mgl32.Vec3, radius float32, ok bool) {
	e, ok := s.FocusEntity(i)
	if !ok {
		return pos, 0, false
	}
	return s.transformMap.Get(e).Position, s.bodyMap.Get(e).Radius, true
}

// FocusIndex returns the focus index of e.
func (s *Scene) FocusIndex(e ecs.Entity) int {
	if !s.bodyMap.Has(e) {
		return -1
	}
	return s.bodyMap.Get(e).FocusIndex
}

// Name returns the name of the body at focus index i.
func (s *Scene) Name(i int) string {
	e, ok := s.FocusEntity(i)
	if !ok {
		return "none"
	}
	return s.bodyMap.Get(e).Name
}

// ParticleCounts samples the particle fields for telemetry.
func (s *Scene) ParticleCounts() telemetry.ParticleCounts {
	p := telemetry.ParticleCounts{
		CME:       s.cme.Count(),
		Bursts:    s.cme.Bursts,
		Truncated: s.cme.Truncated,
	}
	for _, b := range s.belts {
		p.BeltSprites += b.Count()
	}
	return p
}

// Positions appends one record per body for the current time to dst.
func (s *Scene) Positions(tick int64, dst []telemetry.PositionRecord) []telemetry.PositionRecord {
	for _, e := range s.focus {
		body := s.bodyMap.Get(e)
		tr := s.transformMap.Get(e)
		dst = append(dst, telemetry.PositionRecord{
			Tick:       tick,
			SimTime:    s.time,
			Body:       body.Name,
			Kind:       body.Kind.String(),
			X:          tr.Position[0],
			Y:          tr.Position[1],
			Z:          tr.Position[2],
			Distance:   tr.Distance,
			OrbitAngle: tr.OrbitAngle,
			Spin:       tr.Spin,
		})
	}
	return dst
}
