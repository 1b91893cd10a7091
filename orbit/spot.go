package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/vecmath"
)

const (
	// SurfaceLift raises surface features off the sphere to avoid z-fighting.
	SurfaceLift = 1.001
	// SpotDepth is the thickness of a flattened spot along the surface normal.
	SpotDepth = 0.01
)

// Spot is a feature fixed to a body's surface. Angles are in degrees.
type Spot struct {
	LatDeg    float64
	LonDeg    float64
	WidthDeg  float64
	HeightDeg float64
}

// SurfaceFrame returns the unit point at lat/lon in the body's local frame
// and the tangents along increasing longitude and latitude. The triple
// (tangentLon, tangentLat, point) is a right-handed orthonormal basis.
func SurfaceFrame(lat, lon float64) (point, tangentLon, tangentLat mgl32.Vec3) {
	sLat, cLat := math.Sin(lat), math.Cos(lat)
	sLon, cLon := math.Sin(lon), math.Cos(lon)

	point = vecmath.V(cLat*cLon, sLat, -cLat*sLon)
	tangentLon = vecmath.V(-sLon, 0, -cLon)
	tangentLat = vecmath.V(-sLat*cLon, cLat, sLat*sLon)
	return point, tangentLon, tangentLat
}

// SpotMatrix places a flattened spot on a rotating body:
//
//	Translate(pos) * TiltSpin * Translate(p * radius * lift) * Basis(tLon, tLat, n) * Scale(w, h, depth)
//
// The body's spin enters once, through TiltSpin, so the spot stays fixed to
// the surface point it was defined on. s.LonDeg is body-fixed: pass the
// configured longitude, not one already advanced by spin.
func SpotMatrix(pos mgl32.Vec3, tiltDeg, spin float64, radius float32, s Spot) mgl32.Mat4 {
	p, tLon, tLat := SurfaceFrame(vecmath.Rad(s.LatDeg), vecmath.Rad(s.LonDeg))
	lifted := p.Mul(radius * SurfaceLift)

	w := radius * float32(vecmath.Rad(s.WidthDeg))
	h := radius * float32(vecmath.Rad(s.HeightDeg))

	return vecmath.Compose(
		mgl32.Translate3D(pos[0], pos[1], pos[2]),
		vecmath.TiltSpin(vecmath.Rad(tiltDeg), spin),
		mgl32.Translate3D(lifted[0], lifted[1], lifted[2]),
		vecmath.Basis(tLon, tLat, p),
		mgl32.Scale3D(w, h, SpotDepth),
	)
}
