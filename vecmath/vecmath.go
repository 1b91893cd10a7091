// Package vecmath holds the 3D helpers shared by the orbit kernel, the camera
// and the renderer. Vector and matrix primitives come from mgl32; this package
// adds the compositions the scene needs on top of them.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rad converts degrees to radians.
func Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// V builds an mgl32.Vec3 from float64 components.
func V(x, y, z float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// TiltSpin returns the fused axial-tilt and spin rotation as a single block.
// It equals RotY(-spin) * RotX(-tilt); the columns are written out directly:
//
//	x = (cos s, 0, sin s)
//	y = (sin s sin t, cos t, -cos s sin t)
//	z = (-sin s cos t, sin t, cos s cos t)
func TiltSpin(tilt, spin float64) mgl32.Mat4 {
	ct, st := math.Cos(tilt), math.Sin(tilt)
	cs, ss := math.Cos(spin), math.Sin(spin)
	return mgl32.Mat4{
		float32(cs), 0, float32(ss), 0,
		float32(ss * st), float32(ct), float32(-cs * st), 0,
		float32(-ss * ct), float32(st), float32(cs * ct), 0,
		0, 0, 0, 1,
	}
}

// Incline tilts a point of a flat (xz) orbit about the x-axis by inc radians.
// Inclined orbits stay symmetric about the ecliptic plane.
func Incline(flatX, flatZ, inc float64) mgl32.Vec3 {
	return V(flatX, -flatZ*math.Sin(inc), flatZ*math.Cos(inc))
}

// Basis returns the change-of-basis matrix whose columns are x, y and z.
func Basis(x, y, z mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
}

// Compose multiplies the matrices left to right: Compose(a, b, c) = a*b*c.
func Compose(ms ...mgl32.Mat4) mgl32.Mat4 {
	out := mgl32.Ident4()
	for _, m := range ms {
		out = out.Mul4(m)
	}
	return out
}

// TRS builds Translate(pos) * rot * Scale(s).
func TRS(pos mgl32.Vec3, rot mgl32.Mat4, s float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(rot).Mul4(mgl32.Scale3D(s, s, s))
}

// Transform applies m to a point.
func Transform(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Translation extracts the translation column of m.
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// ScreenPoint is a world point projected to the viewport.
type ScreenPoint struct {
	X, Y    float32
	Depth   float32 // normalized device depth
	Visible bool    // depth strictly within (-1, 1)
}

// Project maps a world point to screen pixels. Y grows downward.
func Project(world mgl32.Vec3, view, proj mgl32.Mat4, width, height float32) ScreenPoint {
	clip := proj.Mul4(view).Mul4x1(world.Vec4(1))
	w := clip.W()
	if w == 0 {
		return ScreenPoint{}
	}
	ndc := clip.Vec3().Mul(1 / w)
	return ScreenPoint{
		X:       (ndc.X()*0.5 + 0.5) * width,
		Y:       (1 - (ndc.Y()*0.5 + 0.5)) * height,
		Depth:   ndc.Z(),
		Visible: ndc.Z() > -1 && ndc.Z() < 1,
	}
}
