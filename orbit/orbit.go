// Package orbit is the closed-form transform kernel. Every body follows an
// independent ellipse around its parent; nothing here integrates forces.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/vecmath"
)

// Orbit describes a body's path around its parent.
type Orbit struct {
	Radius         float64 // circle radius, or semi-major axis when eccentric
	Eccentricity   float64 // [0, 1)
	InclinationDeg float64
	Speed          float64 // angular speed before the global time scale
	StartAngle     float64 // phase offset in radians
}

// Angle returns the orbit angle theta at time t.
func Angle(o Orbit, t, scale float64) float64 {
	return t*o.Speed*scale + o.StartAngle
}

// Distance returns the distance from the parent at orbit angle theta. The
// parent sits at one focus of the ellipse.
func Distance(o Orbit, theta float64) float64 {
	if o.Eccentricity == 0 {
		return o.Radius
	}
	e := o.Eccentricity
	return o.Radius * (1 - e*e) / (1 + e*math.Cos(theta))
}

// Flat returns the point in the orbit's own plane before inclination.
func Flat(o Orbit, theta float64) (x, z float64) {
	r := Distance(o, theta)
	return r * math.Cos(theta), r * math.Sin(theta)
}

// PointAt returns the inclined orbit point at angle theta, relative to the parent.
func PointAt(o Orbit, theta float64) mgl32.Vec3 {
	x, z := Flat(o, theta)
	return vecmath.Incline(x, z, vecmath.Rad(o.InclinationDeg))
}

// Position returns the body's offset from its parent at time t.
func Position(o Orbit, t, scale float64) mgl32.Vec3 {
	return PointAt(o, Angle(o, t, scale))
}

// Period returns the time for one revolution. A stationary orbit never
// repeats and reports +Inf.
func Period(o Orbit, scale float64) float64 {
	w := math.Abs(o.Speed * scale)
	if w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

// SpinAngle returns a body's rotation about its own axis at time t.
func SpinAngle(rotationSpeed, t, scale float64) float64 {
	return t * rotationSpeed * scale
}

// TidalLockAngle returns the spin of a tidally locked moon. The fixed
// quarter-turn offset keeps one hemisphere toward the parent.
func TidalLockAngle(orbitAngle float64) float64 {
	return orbitAngle + math.Pi/2
}

// ModelMatrix builds Translate(pos) * TiltSpin * Scale(radius).
func ModelMatrix(pos mgl32.Vec3, tiltDeg, spin float64, radius float32) mgl32.Mat4 {
	return vecmath.TRS(pos, vecmath.TiltSpin(vecmath.Rad(tiltDeg), spin), radius)
}

// RingMatrix places a ring in the parent's tilted, spinning equatorial plane.
// Ring radii are baked into the mesh so no scale is applied.
func RingMatrix(pos mgl32.Vec3, tiltDeg, spin float64) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(vecmath.TiltSpin(vecmath.Rad(tiltDeg), spin))
}
