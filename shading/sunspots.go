package shading

import (
	"math"
	"math/rand"
)

// ValueNoise interpolates random lattice values from a seeded permutation table.
type ValueNoise struct {
	perm [512]int
}

// NewValueNoise creates a value noise generator.
func NewValueNoise(seed int64) *ValueNoise {
	n := &ValueNoise{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	for i := 0; i < 256; i++ {
		n.perm[i] = perm[i]
		n.perm[i+256] = perm[i]
	}
	return n
}

func (n *ValueNoise) lattice(x, y int) float64 {
	return float64(n.perm[n.perm[x&255]+(y&255)]) / 255
}

// Noise2D returns a value in [0, 1].
func (n *ValueNoise) Noise2D(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	ix, iy := int(fx), int(fy)
	u := fade(x - fx)
	v := fade(y - fy)

	a := n.lattice(ix, iy)
	b := n.lattice(ix+1, iy)
	c := n.lattice(ix, iy+1)
	d := n.lattice(ix+1, iy+1)
	return lerp(v, lerp(u, a, b), lerp(u, c, d))
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// SunspotParams shape the procedural spot pattern on emissive bodies.
type SunspotParams struct {
	Scale     float64 // lattice cells across the texture
	Drift     float64 // texture-space drift per second
	Threshold float64 // noise level where spots begin
	Darkness  float64 // fraction of light removed at a spot's core
}

// DefaultSunspots returns sparse, slowly drifting spots.
func DefaultSunspots() SunspotParams {
	return SunspotParams{Scale: 8, Drift: 0.02, Threshold: 0.72, Darkness: 0.55}
}

// Sunspots returns the multiplier applied to the base color at texture
// coordinate (u, v) and time t. Two octaves drift in different directions.
func (n *ValueNoise) Sunspots(u, v, t float64, p SunspotParams) float32 {
	lo := n.Noise2D(u*p.Scale+t*p.Drift, v*p.Scale)
	hi := n.Noise2D(u*p.Scale*2-t*p.Drift*1.7, v*p.Scale*2+t*p.Drift*0.6)
	v2 := 0.65*lo + 0.35*hi

	spot := smoothstep(float32(p.Threshold), float32(p.Threshold+0.08), float32(v2))
	return 1 - float32(p.Darkness)*spot
}
