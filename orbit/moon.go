package orbit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/vecmath"
)

// PlacementMode selects the reference plane of a moon's orbit.
type PlacementMode uint8

const (
	// Ecliptic orbits parallel to the ecliptic, offset only by the parent position.
	Ecliptic PlacementMode = iota
	// InheritedTilt orbits in the parent's spinning equatorial plane, like its rings.
	InheritedTilt
	// ExplicitTilt orbits in its own plane tilted about the x-axis.
	ExplicitTilt
)

func (m PlacementMode) String() string {
	switch m {
	case Ecliptic:
		return "ecliptic"
	case InheritedTilt:
		return "inherited"
	case ExplicitTilt:
		return "explicit"
	}
	return fmt.Sprintf("PlacementMode(%d)", uint8(m))
}

// Placement is the resolved orbital reference of a moon. TiltDeg is only
// meaningful for ExplicitTilt.
type Placement struct {
	Mode    PlacementMode
	TiltDeg float64
}

func (p Placement) String() string {
	if p.Mode == ExplicitTilt {
		return fmt.Sprintf("explicit %.2f°", p.TiltDeg)
	}
	return p.Mode.String()
}

// ResolvePlacement picks exactly one mode from the optional moon fields.
// An explicit tilt wins over inheriting the parent's axis.
func ResolvePlacement(explicitTiltDeg *float64, inheritParentTilt bool) Placement {
	switch {
	case explicitTiltDeg != nil:
		return Placement{Mode: ExplicitTilt, TiltDeg: *explicitTiltDeg}
	case inheritParentTilt:
		return Placement{Mode: InheritedTilt}
	default:
		return Placement{Mode: Ecliptic}
	}
}

// ParentFrame is the parent state a moon is placed against.
type ParentFrame struct {
	Position mgl32.Vec3
	TiltDeg  float64
	Spin     float64
}

// MoonOrbit is a moon's orbit together with its placement mode.
type MoonOrbit struct {
	Orbit     Orbit
	Placement Placement
}

// MoonPosition returns the moon's world position and its orbit angle at time t.
func MoonPosition(parent ParentFrame, m MoonOrbit, t, scale float64) (mgl32.Vec3, float64) {
	theta := Angle(m.Orbit, t, scale)
	x, z := Flat(m.Orbit, theta)

	var local mgl32.Vec3
	switch m.Placement.Mode {
	case ExplicitTilt:
		local = vecmath.Incline(x, z, vecmath.Rad(m.Placement.TiltDeg))
	case InheritedTilt:
		frame := vecmath.TiltSpin(vecmath.Rad(parent.TiltDeg), parent.Spin)
		local = vecmath.Transform(frame, vecmath.V(x, 0, z))
	default:
		local = vecmath.Incline(x, z, vecmath.Rad(m.Orbit.InclinationDeg))
	}
	return parent.Position.Add(local), theta
}
