// Package systems contains ECS systems and particle fields for the orrery.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/orbit"
)

// OrbitSystem places every body for a simulation time. Planets are solved
// before moons so each moon sees its parent's frame for the same tick.
type OrbitSystem struct {
	primaries  *ecs.Filter4[components.Body, components.Orbit, components.Transform, components.Primary]
	satellites *ecs.Filter4[components.Body, components.Orbit, components.Transform, components.Satellite]
	bodies     *ecs.Map[components.Body]
	transforms *ecs.Map[components.Transform]

	TimeScale     float64 // scales orbital angular speed
	RotationScale float64 // scales spin speed
}

// NewOrbitSystem creates an orbit system over the world's bodies.
func NewOrbitSystem(w *ecs.World, timeScale, rotationScale float64) *OrbitSystem {
	return &OrbitSystem{
		primaries:     ecs.NewFilter4[components.Body, components.Orbit, components.Transform, components.Primary](w),
		satellites:    ecs.NewFilter4[components.Body, components.Orbit, components.Transform, components.Satellite](w),
		bodies:        ecs.NewMap[components.Body](w),
		transforms:    ecs.NewMap[components.Transform](w),
		TimeScale:     timeScale,
		RotationScale: rotationScale,
	}
}

// Update writes positions, spins and model matrices for time t.
func (s *OrbitSystem) Update(t float64) {
	query := s.primaries.Query()
	for query.Next() {
		body, orb, tr, _ := query.Get()

		theta := orbit.Angle(orb.Params, t, s.TimeScale)
		tr.OrbitAngle = theta
		tr.Position = orbit.PointAt(orb.Params, theta)
		tr.Distance = float32(orbit.Distance(orb.Params, theta))
		tr.Spin = orbit.SpinAngle(body.RotationSpeed, t, s.RotationScale)
		tr.Model = orbit.ModelMatrix(tr.Position, body.TiltDeg, tr.Spin, body.Radius)
	}

	query2 := s.satellites.Query()
	for query2.Next() {
		body, orb, tr, sat := query2.Get()

		parent := s.transforms.Get(sat.Parent)
		parentBody := s.bodies.Get(sat.Parent)
		frame := orbit.ParentFrame{
			Position: parent.Position,
			TiltDeg:  parentBody.TiltDeg,
			Spin:     parent.Spin,
		}

		pos, theta := orbit.MoonPosition(frame, orbit.MoonOrbit{Orbit: orb.Params, Placement: sat.Placement}, t, s.TimeScale)
		tr.OrbitAngle = theta
		tr.Position = pos
		tr.Distance = float32(orbit.Distance(orb.Params, theta))
		if sat.TidalLock {
			tr.Spin = orbit.TidalLockAngle(theta)
		} else {
			tr.Spin = orbit.SpinAngle(body.RotationSpeed, t, s.RotationScale)
		}
		tr.Model = orbit.ModelMatrix(tr.Position, body.TiltDeg, tr.Spin, body.Radius)
	}
}
