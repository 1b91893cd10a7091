package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/shading"
)

// beltClumpScale sets how many density clumps fit around a belt.
const beltClumpScale = 6

// BeltField is a ring of small bodies drawn as sprites. Each member keeps a
// fixed radius and height and revolves at a speed that falls off with radius
// like a Keplerian disc.
type BeltField struct {
	Sprites renderer.Sprites

	radius []float64
	phase  []float64
	speed  []float64
	height []float32

	TimeScale float64
}

// NewBeltField scatters cfg.Count members uniformly over the annulus area.
func NewBeltField(cfg config.BeltConfig, timeScale float64, rng *rand.Rand) *BeltField {
	n := max(cfg.Count, 0)
	inner, outer := cfg.Inner, cfg.Outer
	if inner > outer {
		inner, outer = outer, inner
	}
	inner = max(inner, 0)

	f := &BeltField{
		Sprites: renderer.Sprites{
			Positions: make([]float32, 3*n),
			Sizes:     make([]float32, n),
			Alphas:    make([]float32, n),
			Size:      float32(cfg.PointSize),
			Color:     cfg.Color.Vec4(),
		},
		radius:    make([]float64, n),
		phase:     make([]float64, n),
		speed:     make([]float64, n),
		height:    make([]float32, n),
		TimeScale: timeScale,
	}

	clumps := shading.NewValueNoise(rng.Int63())
	alpha := f.Sprites.Color[3]
	for i := range n {
		// sqrt keeps density uniform per unit area
		r := math.Sqrt(inner*inner + rng.Float64()*(outer*outer-inner*inner))
		f.radius[i] = r
		f.phase[i] = rng.Float64() * 2 * math.Pi
		f.speed[i] = cfg.BaseSpeed
		if r > 0 && inner > 0 {
			f.speed[i] = cfg.BaseSpeed * math.Pow(inner/r, 1.5)
		}
		f.height[i] = float32((rng.Float64() - 0.5) * cfg.Thickness)
		f.Sprites.Sizes[i] = f.Sprites.Size * (0.5 + rng.Float32())

		density := clumps.Noise2D(f.phase[i]/(2*math.Pi)*beltClumpScale, r*0.1)
		f.Sprites.Alphas[i] = alpha * float32(0.3+0.7*density)
	}
	f.Sprites.Count = n
	f.Update(0)
	return f
}

// Update rewrites every member position for time t. Buffers are reused.
func (f *BeltField) Update(t float64) {
	pos := f.Sprites.Positions
	for i, r := range f.radius {
		a := f.phase[i] + t*f.speed[i]*f.TimeScale
		pos[3*i] = float32(r * math.Cos(a))
		pos[3*i+1] = f.height[i]
		pos[3*i+2] = float32(r * math.Sin(a))
	}
}

// Count returns the number of belt members.
func (f *BeltField) Count() int {
	return f.Sprites.Count
}
