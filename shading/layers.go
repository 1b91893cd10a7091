package shading

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Capabilities is the set of optional surface layers a body enables.
type Capabilities uint8

const (
	CapTexture Capabilities = 1 << iota
	CapNight
	CapSpecular
	CapClouds
	CapNormal
	CapTerminator
)

var capNames = []struct {
	c    Capabilities
	name string
}{
	{CapTexture, "texture"},
	{CapNight, "night"},
	{CapSpecular, "specular"},
	{CapClouds, "clouds"},
	{CapNormal, "normal"},
	{CapTerminator, "terminator"},
}

// Has reports whether every bit of c is set.
func (c Capabilities) Has(o Capabilities) bool {
	return c&o == o
}

func (c Capabilities) String() string {
	var parts []string
	for _, n := range capNames {
		if c.Has(n.c) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseCapability maps a config name to its flag. Unknown names return 0.
func ParseCapability(name string) Capabilities {
	for _, n := range capNames {
		if strings.EqualFold(n.name, name) {
			return n.c
		}
	}
	return 0
}

// Sample is everything the composition reads at one surface point.
type Sample struct {
	Day   mgl32.Vec3 // base color or day texel
	Night mgl32.Vec3
	Cloud mgl32.Vec3

	SpecMask    float32    // specular-map channel
	NormalTexel mgl32.Vec3 // tangent-space normal-map texel in [0, 1]

	Normal    mgl32.Vec3
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
	LightDir  mgl32.Vec3
	ViewDir   mgl32.Vec3

	Shadow float32 // combined eclipse multiplier
}

// Compose layers the optional surface terms in a fixed order: lit base,
// night lights, specular, clouds.
func Compose(s Sample, caps Capabilities, p Params) mgl32.Vec3 {
	n := s.Normal
	if caps.Has(CapNormal) {
		n = ApplyNormalMap(s.Normal, s.Tangent, s.Bitangent, s.NormalTexel)
	}

	d := Diffuse(n, s.LightDir)
	light := d
	if caps.Has(CapTerminator) {
		light = Terminator(d, p)
	}
	lit := p.Ambient + (1-p.Ambient)*light*s.Shadow
	color := s.Day.Mul(lit)

	if caps.Has(CapNight) {
		color = mixVec(color, s.Night, NightBlend(d*s.Shadow, p.NightBlendRange))
	}
	if caps.Has(CapSpecular) && d > 0 {
		spec := Specular(n, s.LightDir, s.ViewDir, p.Shininess) * s.SpecMask * p.SpecularStrength * s.Shadow
		color = color.Add(mgl32.Vec3{spec, spec, spec})
	}
	if caps.Has(CapClouds) {
		color = mixVec(color, s.Cloud.Mul(lit), Luminance(s.Cloud))
	}
	return color
}

// NightBlend is the weight of the night texture; it reaches 1 where the
// diffuse term is zero and 0 past the blend range.
func NightBlend(diffuse, blendRange float32) float32 {
	return 1 - smoothstep(0, blendRange, diffuse)
}

// Specular is the Phong term pow(max(dot(reflect(-l, n), v), 0), shininess).
func Specular(normal, lightDir, viewDir mgl32.Vec3, shininess float32) float32 {
	incident := lightDir.Mul(-1)
	reflected := incident.Sub(normal.Mul(2 * normal.Dot(incident)))
	rv := max(reflected.Dot(viewDir), 0)
	return float32(math.Pow(float64(rv), float64(shininess)))
}

// Luminance uses Rec. 601 weights.
func Luminance(c mgl32.Vec3) float32 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}

// CloudU scrolls the cloud layer's u coordinate with time and wraps it.
func CloudU(u, t, speed float32) float32 {
	w := u + t*speed
	return w - float32(math.Floor(float64(w)))
}

// ApplyNormalMap perturbs n by a tangent-space texel in [0, 1].
func ApplyNormalMap(n, tangent, bitangent, texel mgl32.Vec3) mgl32.Vec3 {
	ts := texel.Mul(2).Sub(mgl32.Vec3{1, 1, 1})
	out := tangent.Mul(ts[0]).Add(bitangent.Mul(ts[1])).Add(n.Mul(ts[2]))
	if out.Len() == 0 {
		return n
	}
	return out.Normalize()
}

func mixVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
