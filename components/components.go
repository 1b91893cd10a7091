// Package components defines ECS components for the orrery scene.
package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/orbit"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/shading"
)

// Kind identifies where a body sits in the hierarchy.
type Kind uint8

const (
	KindSun Kind = iota
	KindPlanet
	KindMoon
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	}
	return "unknown"
}

// Body holds the static physical attributes of a body.
type Body struct {
	Name          string               `inspect:"label"`
	Kind          Kind                 `inspect:"label"`
	Radius        float32              `inspect:"label,fmt:%.2f"`
	TiltDeg       float64              `inspect:"label,fmt:%.2f°"`
	RotationSpeed float64              `inspect:"label,fmt:%.3f"`
	Color         mgl32.Vec4           `inspect:"skip"`
	Emissive      bool                 `inspect:"bool"`
	Caps          shading.Capabilities `inspect:"label"`
	FocusIndex    int                  `inspect:"skip"` // position in the focus cycle
}

// Orbit is the body's path around its parent. The sun carries a zero orbit.
type Orbit struct {
	Params orbit.Orbit         `inspect:"skip"`
	Path   renderer.PathHandle `inspect:"skip"`
}

// Transform is the per-tick state written by the orbit system.
type Transform struct {
	Position   mgl32.Vec3 `inspect:"skip"`
	OrbitAngle float64    `inspect:"angle"`
	Spin       float64    `inspect:"angle"`
	Distance   float32    `inspect:"label,fmt:%.2f"` // from parent
	Model      mgl32.Mat4 `inspect:"skip"`
}

// Primary marks a body that orbits the origin: the sun and its planets.
// Order is the draw order among primaries.
type Primary struct {
	Order int
}

// Satellite marks a moon and links it to its planet.
type Satellite struct {
	Parent    ecs.Entity      `inspect:"skip"`
	Placement orbit.Placement `inspect:"label"`
	TidalLock bool            `inspect:"bool"`
	Index     int             `inspect:"skip"` // position among the parent's moons
}

// Surface holds the texture slots of a body's layers.
type Surface struct {
	renderer.Surface
}

// Band is one annulus of a ring system.
type Band struct {
	Inner, Outer float32
	Mesh         renderer.MeshHandle
	Color        mgl32.Vec4
	Texture      renderer.TextureSlot
}

// Rings holds a planet's ring system, drawn in its equatorial plane.
type Rings struct {
	Bands []Band
}

// Spot is a surface feature fixed to a planet.
type Spot struct {
	Spot  orbit.Spot
	Color mgl32.Vec4
}

// Moons lists a planet's satellites in configuration order.
type Moons struct {
	Entities []ecs.Entity
}
