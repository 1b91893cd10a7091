// Package shading is the CPU reference of the per-pixel lighting model that
// shaders/body.fs evaluates on the GPU. The sun is a point light at the
// origin. All results are illumination multipliers or linear RGB.
package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Params are the tunables shared by the CPU reference and the shader.
type Params struct {
	Ambient float32

	UmbraLevel    float32 // multiplier inside the umbra
	PenumbraScale float32 // penumbra radius as a multiple of the occluder radius

	TerminatorThreshold float32
	TerminatorBand      float32
	NightLevel          float32

	NightBlendRange  float32
	Shininess        float32
	SpecularStrength float32
	CloudSpeed       float32
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		Ambient:             0.04,
		UmbraLevel:          0.15,
		PenumbraScale:       1.5,
		TerminatorThreshold: 0.05,
		TerminatorBand:      0.1,
		NightLevel:          0.03,
		NightBlendRange:     0.25,
		Shininess:           32,
		SpecularStrength:    0.5,
		CloudSpeed:          0.003,
	}
}

// LightDir returns the unit direction from point toward the sun.
func LightDir(point mgl32.Vec3) mgl32.Vec3 {
	if point.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return point.Mul(-1).Normalize()
}

// Diffuse is the clamped Lambert term.
func Diffuse(normal, lightDir mgl32.Vec3) float32 {
	return max(normal.Dot(lightDir), 0)
}

// Terminator sharpens the day/night boundary. Below the threshold the surface
// is held at the night level; across the band it ramps linearly up to d.
func Terminator(d float32, p Params) float32 {
	switch {
	case d < p.TerminatorThreshold:
		return p.NightLevel
	case p.TerminatorBand <= 0 || d >= p.TerminatorThreshold+p.TerminatorBand:
		return d
	default:
		f := (d - p.TerminatorThreshold) / p.TerminatorBand
		return mix(p.NightLevel, d, f)
	}
}

// Eclipse returns the light reaching point past a spherical occluder. The ray
// runs from point toward the sun; only occluders between the two cast shadow.
// Inside the occluder radius the result is UmbraLevel; out to
// radius*PenumbraScale it ramps linearly back to 1.
func Eclipse(point, occluder mgl32.Vec3, radius float32, p Params) float32 {
	toLight := point.Mul(-1)
	distLight := toLight.Len()
	if distLight == 0 || radius <= 0 {
		return 1
	}
	dir := toLight.Mul(1 / distLight)

	tca := occluder.Sub(point).Dot(dir)
	if tca <= 0 || tca >= distLight {
		return 1
	}

	d := point.Add(dir.Mul(tca)).Sub(occluder).Len()
	if d < radius {
		return p.UmbraLevel
	}
	outer := radius * p.PenumbraScale
	if d < outer {
		f := (d - radius) / (outer - radius)
		return mix(p.UmbraLevel, 1, f)
	}
	return 1
}

// Occluder is a sphere that may shadow a target.
type Occluder struct {
	Center mgl32.Vec3
	Radius float32
}

// CombineShadows keeps the most severe of several shadow multipliers.
func CombineShadows(levels ...float32) float32 {
	out := float32(1)
	for _, l := range levels {
		out = min(out, l)
	}
	return out
}

// Shadow evaluates every occluder against point and combines the results.
func Shadow(point mgl32.Vec3, occluders []Occluder, p Params) float32 {
	out := float32(1)
	for _, o := range occluders {
		out = min(out, Eclipse(point, o.Center, o.Radius, p))
	}
	return out
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func clamp01(x float32) float32 {
	return float32(math.Max(0, math.Min(1, float64(x))))
}
