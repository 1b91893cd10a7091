package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Disc describes a unit sphere seen face-on from +Z with the sun off to one
// side and an optional occluder on the sun line.
type Disc struct {
	Size int // pixels across

	SunAzimuth  float32 // radians from the view axis toward +X
	SunDistance float32

	OccluderDistance float32 // along the sun line from the sphere's center
	OccluderOffsetX  float32 // across the sun line, in sphere radii
	OccluderOffsetY  float32
	OccluderRadius   float32 // zero disables the occluder

	Day   mgl32.Vec3
	Night mgl32.Vec3
	Caps  Capabilities
}

// Occluder returns the occluder's world position, sun at the origin.
func (d Disc) Occluder() (Occluder, bool) {
	if d.OccluderRadius <= 0 {
		return Occluder{}, false
	}
	toSun, center := d.frame()
	across := mgl32.Vec3{toSun.Z(), 0, -toSun.X()}
	pos := center.
		Add(toSun.Mul(d.OccluderDistance)).
		Add(across.Mul(d.OccluderOffsetX)).
		Add(mgl32.Vec3{0, d.OccluderOffsetY, 0})
	return Occluder{Center: pos, Radius: d.OccluderRadius}, true
}

func (d Disc) frame() (toSun, center mgl32.Vec3) {
	s, c := math.Sincos(float64(d.SunAzimuth))
	toSun = mgl32.Vec3{float32(s), 0, float32(c)}
	return toSun, toSun.Mul(-d.SunDistance)
}

// Render shades every pixel of the disc into dst, row-major from the top.
// Pixels off the sphere are zero.
func (d Disc) Render(dst []mgl32.Vec3, p Params) []mgl32.Vec3 {
	n := d.Size * d.Size
	if cap(dst) < n {
		dst = make([]mgl32.Vec3, n)
	}
	dst = dst[:n]

	_, center := d.frame()
	var occluders []Occluder
	if o, ok := d.Occluder(); ok {
		occluders = []Occluder{o}
	}
	view := mgl32.Vec3{0, 0, 1}
	inv := 2 / float32(d.Size)

	for py := range d.Size {
		y := 1 - (float32(py)+0.5)*inv
		for px := range d.Size {
			x := (float32(px)+0.5)*inv - 1
			r2 := x*x + y*y
			if r2 > 1 {
				dst[py*d.Size+px] = mgl32.Vec3{}
				continue
			}
			normal := mgl32.Vec3{x, y, float32(math.Sqrt(float64(1 - r2)))}
			point := center.Add(normal)
			dst[py*d.Size+px] = Compose(Sample{
				Day:      d.Day,
				Night:    d.Night,
				SpecMask: 1,
				Normal:   normal,
				LightDir: LightDir(point),
				ViewDir:  view,
				Shadow:   Shadow(point, occluders, p),
			}, d.Caps, p)
		}
	}
	return dst
}
