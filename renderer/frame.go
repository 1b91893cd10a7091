package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/shading"
)

// Surface names the texture slot for each optional layer of a body.
type Surface struct {
	Day      TextureSlot
	Night    TextureSlot
	Clouds   TextureSlot
	Specular TextureSlot
	Normal   TextureSlot
}

// ShadowParams lists the spheres that may eclipse a body this frame.
type ShadowParams struct {
	Occluders     [MaxOccluders]mgl32.Vec4 // xyz centre, w radius
	OccluderCount int
	Parent        mgl32.Vec4
	HasParent     bool
}

// AddOccluder appends an occluder, dropping it if the array is full.
func (s *ShadowParams) AddOccluder(center mgl32.Vec3, radius float32) bool {
	if s.OccluderCount >= MaxOccluders {
		return false
	}
	s.Occluders[s.OccluderCount] = center.Vec4(radius)
	s.OccluderCount++
	return true
}

// SetParent records the body this one orbits as an occluder.
func (s *ShadowParams) SetParent(center mgl32.Vec3, radius float32) {
	s.Parent = center.Vec4(radius)
	s.HasParent = true
}

// SphereDraw is one sphere draw with its material.
type SphereDraw struct {
	Model    mgl32.Mat4
	Color    mgl32.Vec4
	Emissive bool
	Caps     shading.Capabilities
	Surface  Surface
	Shadow   ShadowParams
}

// RingDraw is an annulus in a planet's equatorial plane.
type RingDraw struct {
	Model   mgl32.Mat4
	Mesh    MeshHandle
	Color   mgl32.Vec4
	Texture TextureSlot
}

// SpotDraw is a flattened sphere fixed to a planet's surface.
type SpotDraw struct {
	Model mgl32.Mat4
	Color mgl32.Vec4
}

// PlanetDraw groups a planet with the features drawn in its local order.
type PlanetDraw struct {
	Body    SphereDraw
	Spot    SpotDraw
	HasSpot bool
	Moons   []SphereDraw
	Rings   []RingDraw
}

// OrbitDraw is one orbit path line loop.
type OrbitDraw struct {
	Path  PathHandle
	Color mgl32.Vec4
}

// Frame is everything drawn in one tick. Slices are reused between frames.
type Frame struct {
	View      mgl32.Mat4
	Proj      mgl32.Mat4
	CameraPos mgl32.Vec3
	Time      float32

	Orbits    []OrbitDraw
	Belts     []*Sprites
	Suns      []SphereDraw
	Planets   []PlanetDraw
	Particles *Sprites
}

// Reset empties the draw lists while keeping their capacity.
func (f *Frame) Reset() {
	f.Orbits = f.Orbits[:0]
	f.Belts = f.Belts[:0]
	f.Suns = f.Suns[:0]
	for i := range f.Planets {
		f.Planets[i].Moons = f.Planets[i].Moons[:0]
		f.Planets[i].Rings = f.Planets[i].Rings[:0]
	}
	f.Planets = f.Planets[:0]
	f.Particles = nil
}

// NextPlanet extends Planets by one, reusing the nested slices of a previous
// frame's entry when there is one.
func (f *Frame) NextPlanet() *PlanetDraw {
	n := len(f.Planets)
	if n < cap(f.Planets) {
		f.Planets = f.Planets[:n+1]
		p := &f.Planets[n]
		moons, rings := p.Moons[:0], p.Rings[:0]
		*p = PlanetDraw{Moons: moons, Rings: rings}
		return p
	}
	f.Planets = append(f.Planets, PlanetDraw{})
	return &f.Planets[n]
}
