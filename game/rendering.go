package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/inspector"
	"github.com/pthm-cable/orrery/orbit"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/ui"
)

// Layers selects the optional parts of a frame.
type Layers struct {
	Orbits     bool
	Belts      bool
	CME        bool
	OrbitColor mgl32.Vec4
}

// BuildFrame fills f with the draw lists for the current scene state. Each
// planet lists its moons as eclipse occluders, and each moon lists its planet.
func (s *Scene) BuildFrame(f *renderer.Frame, cam *camera.Camera, layers Layers) {
	f.Reset()
	f.View = cam.View()
	f.Proj = cam.Projection()
	f.CameraPos = cam.Eye()
	f.Time = float32(s.time)

	if layers.Orbits && s.uploaded {
		for _, e := range s.planets {
			f.Orbits = append(f.Orbits, renderer.OrbitDraw{Path: s.orbitMap.Get(e).Path, Color: layers.OrbitColor})
		}
	}
	if layers.Belts {
		for _, b := range s.belts {
			f.Belts = append(f.Belts, &b.Sprites)
		}
	}

	f.Suns = append(f.Suns, s.sphereDraw(s.sun))

	for _, e := range s.planets {
		p := f.NextPlanet()
		p.Body = s.sphereDraw(e)

		body := s.bodyMap.Get(e)
		tr := s.transformMap.Get(e)

		if s.spotMap.Has(e) {
			spot := s.spotMap.Get(e)
			p.Spot = renderer.SpotDraw{
				Model: orbit.SpotMatrix(tr.Position, body.TiltDeg, tr.Spin, body.Radius, spot.Spot),
				Color: spot.Color,
			}
			p.HasSpot = true
		}

		if s.moonsMap.Has(e) {
			for _, m := range s.moonsMap.Get(e).Entities {
				md := s.sphereDraw(m)
				md.Shadow.SetParent(tr.Position, body.Radius)
				p.Moons = append(p.Moons, md)

				mb := s.bodyMap.Get(m)
				p.Body.Shadow.AddOccluder(s.transformMap.Get(m).Position, mb.Radius)
			}
		}

		if s.ringsMap.Has(e) && s.uploaded {
			model := orbit.RingMatrix(tr.Position, body.TiltDeg, tr.Spin)
			for _, b := range s.ringsMap.Get(e).Bands {
				p.Rings = append(p.Rings, renderer.RingDraw{
					Model:   model,
					Mesh:    b.Mesh,
					Color:   b.Color,
					Texture: b.Texture,
				})
			}
		}
	}

	if layers.CME {
		f.Particles = &s.cme.Sprites
	}
}

func (s *Scene) sphereDraw(e ecs.Entity) renderer.SphereDraw {
	body := s.bodyMap.Get(e)
	sd := renderer.SphereDraw{
		Model:    s.transformMap.Get(e).Model,
		Color:    body.Color,
		Emissive: body.Emissive,
		Caps:     body.Caps,
	}
	if s.surfaceMap.Has(e) {
		sd.Surface = s.surfaceMap.Get(e).Surface
	}
	return sd
}

// projected is a body's screen footprint for one frame.
type projected struct {
	entity ecs.Entity
	screen ui.LabelItem
}

// project computes the screen position and pixel radius of every body.
// The result reuses dst.
func (s *Scene) project(cam *camera.Camera, focused int, dst []projected) []projected {
	dst = dst[:0]
	eye := cam.Eye()
	for i, e := range s.focus {
		body := s.bodyMap.Get(e)
		pos := s.transformMap.Get(e).Position
		dst = append(dst, projected{
			entity: e,
			screen: ui.LabelItem{
				Text:    body.Name,
				Screen:  cam.WorldToScreen(pos),
				Radius:  screenRadius(cam, eye.Sub(pos).Len(), body.Radius),
				Focused: i == focused,
			},
		})
	}
	return dst
}

// screenRadius is the on-screen radius in pixels of a sphere at distance d.
func screenRadius(cam *camera.Camera, d, radius float32) float32 {
	if d <= radius {
		return cam.ViewportH
	}
	half := float32(math.Tan(float64(cam.FovY) / 2))
	return radius / (d * half) * cam.ViewportH / 2
}

// pickTargets converts projections for inspector picking.
func pickTargets(ps []projected, dst []inspector.Target) []inspector.Target {
	dst = dst[:0]
	for _, p := range ps {
		dst = append(dst, inspector.Target{Entity: p.entity, Screen: p.screen.Screen, Radius: p.screen.Radius})
	}
	return dst
}

// labelItems converts projections for label layout.
func labelItems(ps []projected, dst []ui.LabelItem) []ui.LabelItem {
	dst = dst[:0]
	for _, p := range ps {
		dst = append(dst, p.screen)
	}
	return dst
}
