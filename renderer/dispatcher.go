package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orrery/shading"
)

// ErrMissingUniform is returned when the body program lacks a uniform every
// draw depends on.
var ErrMissingUniform = errors.New("renderer: required uniform missing")

// locations holds every uniform location resolved once at startup.
type locations struct {
	model, view, proj           Location
	baseColor, viewPos, time    Location
	occluders, occluderCount    Location
	parentOccluder              Location
	ambient, umbra, penumbra    Location
	termThreshold, termBand     Location
	nightLevel, nightBlendRange Location
	shininess, specStrength     Location
	cloudSpeed                  Location
	spotScale, spotDrift        Location
	spotThreshold, spotDarkness Location
	samplers                    [NumTextureUnits]Location
	toggles                     [NumToggles]Location
}

// Dispatcher issues the draw calls for a Frame in a fixed order: orbit lines,
// belts, opaque spheres, then additive particles.
type Dispatcher struct {
	backend  Backend
	program  Program
	textures Textures
	sphere   MeshHandle
	params   shading.Params
	spots    shading.SunspotParams
	locs     locations
}

// NewDispatcher resolves the program's uniform locations. Optional uniforms
// that the program lacks are skipped at draw time.
func NewDispatcher(b Backend, prog Program, tex Textures, sphere MeshHandle, params shading.Params) (*Dispatcher, error) {
	if b == nil || tex == nil {
		return nil, errors.New("renderer: backend and textures are required")
	}
	d := &Dispatcher{
		backend:  b,
		program:  prog,
		textures: tex,
		sphere:   sphere,
		params:   params,
		spots:    shading.DefaultSunspots(),
	}

	resolve := func(name string) Location {
		loc := b.UniformLocation(prog, name)
		if loc == NoLocation {
			slog.Debug("uniform not declared", "program", prog, "uniform", name)
		}
		return loc
	}

	l := &d.locs
	l.model = resolve(UniformModel)
	l.view = resolve(UniformView)
	l.proj = resolve(UniformProjection)
	required := []struct {
		name string
		loc  Location
	}{{UniformModel, l.model}, {UniformView, l.view}, {UniformProjection, l.proj}}
	for _, r := range required {
		if r.loc == NoLocation {
			return nil, fmt.Errorf("%w: %s", ErrMissingUniform, r.name)
		}
	}

	l.baseColor = resolve(UniformBaseColor)
	l.viewPos = resolve(UniformViewPos)
	l.time = resolve(UniformTime)
	l.occluders = resolve(UniformOccluders)
	l.occluderCount = resolve(UniformOccluderCount)
	l.parentOccluder = resolve(UniformParentOccluder)
	l.ambient = resolve(UniformAmbient)
	l.umbra = resolve(UniformUmbraLevel)
	l.penumbra = resolve(UniformPenumbraScale)
	l.termThreshold = resolve(UniformTerminatorThreshold)
	l.termBand = resolve(UniformTerminatorBand)
	l.nightLevel = resolve(UniformNightLevel)
	l.nightBlendRange = resolve(UniformNightBlendRange)
	l.shininess = resolve(UniformShininess)
	l.specStrength = resolve(UniformSpecularStrength)
	l.cloudSpeed = resolve(UniformCloudSpeed)
	l.spotScale = resolve(UniformSunspotScale)
	l.spotDrift = resolve(UniformSunspotDrift)
	l.spotThreshold = resolve(UniformSunspotThreshold)
	l.spotDarkness = resolve(UniformSunspotDarkness)
	for unit, name := range samplerNames {
		l.samplers[unit] = resolve(name)
	}
	for t, name := range toggleNames {
		l.toggles[t] = resolve(name)
	}

	// Sampler units never change after link.
	b.UseProgram(prog)
	for unit, loc := range l.samplers {
		if loc != NoLocation {
			b.SetInt(loc, int32(unit))
		}
	}

	return d, nil
}

// SetParams replaces the shading tunables used from the next frame on.
func (d *Dispatcher) SetParams(p shading.Params) {
	d.params = p
}

// SetSunspots replaces the emissive spot pattern used from the next frame on.
func (d *Dispatcher) SetSunspots(p shading.SunspotParams) {
	d.spots = p
}

// NewSession returns a render session with an empty state cache.
func (d *Dispatcher) NewSession() *Session {
	s := &Session{}
	s.Cache = NewStateCache(d.backend, &d.locs.toggles, &s.Stats)
	return s
}

// Session is the per-run mutable render state: the state cache and the
// statistics of the last frame.
type Session struct {
	Cache *StateCache
	Stats Stats
}

// Render draws f. s must come from NewSession on the same dispatcher.
func (d *Dispatcher) Render(s *Session, f *Frame) {
	s.Stats = Stats{}
	b := d.backend

	b.BeginFrame(f.View, f.Proj)

	for _, o := range f.Orbits {
		b.DrawLineLoop(o.Path, o.Color)
		s.Stats.DrawCalls++
	}
	for _, belt := range f.Belts {
		if belt == nil || belt.Count == 0 {
			continue
		}
		b.DrawSprites(belt)
		s.Stats.DrawCalls++
	}

	b.BeginMeshes()
	// The batch flush above may have changed the program and unit 0.
	s.Cache.Invalidate()
	s.Cache.UseProgram(d.program)
	s.Cache.SetCulling(true)
	d.writeFrameUniforms(f)

	for i := range f.Suns {
		d.drawSphere(s, &f.Suns[i])
	}
	for i := range f.Planets {
		p := &f.Planets[i]
		d.drawSphere(s, &p.Body)
		if p.HasSpot {
			d.drawSpot(s, &p.Spot)
		}
		for j := range p.Moons {
			d.drawSphere(s, &p.Moons[j])
		}
		if len(p.Rings) > 0 {
			s.Cache.SetCulling(false)
			for j := range p.Rings {
				d.drawRing(s, &p.Rings[j])
			}
			s.Cache.SetCulling(true)
		}
	}
	b.EndMeshes()

	if f.Particles != nil && f.Particles.Count > 0 {
		b.SetAdditive(true)
		b.SetDepthWrite(false)
		b.DrawSprites(f.Particles)
		s.Stats.DrawCalls++
		b.SetDepthWrite(true)
		b.SetAdditive(false)
	}

	b.EndFrame()
}

func (d *Dispatcher) writeFrameUniforms(f *Frame) {
	b, l, p := d.backend, &d.locs, &d.params
	b.SetMat4(l.view, f.View)
	b.SetMat4(l.proj, f.Proj)
	setVec3(b, l.viewPos, f.CameraPos)
	setFloat(b, l.time, f.Time)
	setFloat(b, l.ambient, p.Ambient)
	setFloat(b, l.umbra, p.UmbraLevel)
	setFloat(b, l.penumbra, p.PenumbraScale)
	setFloat(b, l.termThreshold, p.TerminatorThreshold)
	setFloat(b, l.termBand, p.TerminatorBand)
	setFloat(b, l.nightLevel, p.NightLevel)
	setFloat(b, l.nightBlendRange, p.NightBlendRange)
	setFloat(b, l.shininess, p.Shininess)
	setFloat(b, l.specStrength, p.SpecularStrength)
	setFloat(b, l.cloudSpeed, p.CloudSpeed)
	setFloat(b, l.spotScale, float32(d.spots.Scale))
	setFloat(b, l.spotDrift, float32(d.spots.Drift))
	setFloat(b, l.spotThreshold, float32(d.spots.Threshold))
	setFloat(b, l.spotDarkness, float32(d.spots.Darkness))
}

// layer sets a layer's toggle and binds its texture when the layer is active.
func (d *Dispatcher) layer(s *Session, t Toggle, unit int, enabled bool, slot TextureSlot) {
	active := enabled && slot != NoTexture && d.locs.samplers[unit] != NoLocation
	s.Cache.SetToggle(t, active)
	if active {
		s.Cache.BindTexture(unit, d.textures.Texture(slot))
	}
}

func (d *Dispatcher) drawSphere(s *Session, sd *SphereDraw) {
	c, b, l := s.Cache, d.backend, &d.locs
	lit := !sd.Emissive

	c.SetToggle(ToggleEmissive, sd.Emissive)
	d.layer(s, ToggleUseTexture, UnitDay, sd.Caps.Has(shading.CapTexture), sd.Surface.Day)
	d.layer(s, ToggleUseNight, UnitNight, lit && sd.Caps.Has(shading.CapNight), sd.Surface.Night)
	d.layer(s, ToggleUseClouds, UnitClouds, lit && sd.Caps.Has(shading.CapClouds), sd.Surface.Clouds)
	d.layer(s, ToggleUseSpecular, UnitSpecular, lit && sd.Caps.Has(shading.CapSpecular), sd.Surface.Specular)
	d.layer(s, ToggleUseNormal, UnitNormal, lit && sd.Caps.Has(shading.CapNormal), sd.Surface.Normal)
	c.SetToggle(ToggleUseTerminator, lit && sd.Caps.Has(shading.CapTerminator))

	// Occluder values are written whenever the check is on, so a skipped
	// toggle write never leaves another body's occluders in use.
	checkMoons := lit && sd.Shadow.OccluderCount > 0 && l.occluders != NoLocation
	c.SetToggle(ToggleCheckShadow, checkMoons)
	if checkMoons {
		n := min(sd.Shadow.OccluderCount, MaxOccluders)
		b.SetVec4Array(l.occluders, sd.Shadow.Occluders[:n])
		setFloat(b, l.occluderCount, float32(n))
	}
	checkParent := lit && sd.Shadow.HasParent && l.parentOccluder != NoLocation
	c.SetToggle(ToggleCheckPlanetShadow, checkParent)
	if checkParent {
		b.SetVec4(l.parentOccluder, sd.Shadow.Parent)
	}

	b.SetMat4(l.model, sd.Model)
	setVec4(b, l.baseColor, sd.Color)
	b.DrawMesh(d.sphere)
	s.Stats.DrawCalls++
}

func (d *Dispatcher) drawSpot(s *Session, sp *SpotDraw) {
	d.drawFlat(s, sp.Model, sp.Color, false, NoTexture)
	d.backend.DrawMesh(d.sphere)
	s.Stats.DrawCalls++
}

func (d *Dispatcher) drawRing(s *Session, r *RingDraw) {
	d.drawFlat(s, r.Model, r.Color, true, r.Texture)
	d.backend.DrawMesh(r.Mesh)
	s.Stats.DrawCalls++
}

// drawFlat prepares an untextured-layer material: no night, clouds,
// specular, normal map or eclipse checks.
func (d *Dispatcher) drawFlat(s *Session, model mgl32.Mat4, color mgl32.Vec4, emissive bool, tex TextureSlot) {
	c := s.Cache
	c.SetToggle(ToggleEmissive, emissive)
	d.layer(s, ToggleUseTexture, UnitDay, true, tex)
	c.SetToggle(ToggleUseNight, false)
	c.SetToggle(ToggleUseClouds, false)
	c.SetToggle(ToggleUseSpecular, false)
	c.SetToggle(ToggleUseNormal, false)
	c.SetToggle(ToggleUseTerminator, false)
	c.SetToggle(ToggleCheckShadow, false)
	c.SetToggle(ToggleCheckPlanetShadow, false)

	d.backend.SetMat4(d.locs.model, model)
	setVec4(d.backend, d.locs.baseColor, color)
}

func setFloat(b Backend, loc Location, v float32) {
	if loc != NoLocation {
		b.SetFloat(loc, v)
	}
}

func setVec3(b Backend, loc Location, v mgl32.Vec3) {
	if loc != NoLocation {
		b.SetVec3(loc, v)
	}
}

func setVec4(b Backend, loc Location, v mgl32.Vec4) {
	if loc != NoLocation {
		b.SetVec4(loc, v)
	}
}
