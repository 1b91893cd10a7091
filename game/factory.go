package game

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/geometry"
	"github.com/pthm-cable/orrery/orbit"
	"github.com/pthm-cable/orrery/renderer"
)

// TextureRegistry hands out texture slots by logical name.
type TextureRegistry interface {
	Register(name, file string) renderer.TextureSlot
}

// Uploader creates GPU geometry.
type Uploader interface {
	UploadMesh(m geometry.Mesh) renderer.MeshHandle
	UploadPath(p geometry.Path) renderer.PathHandle
}

// spawnBodies creates the sun, each planet and its moons in configuration
// order. Optional features become components only when configured.
func (s *Scene) spawnBodies(cfg *config.Config) {
	bc := &cfg.Bodies

	s.sun = s.spawnPrimary(&bc.Sun, components.KindSun, 0)

	for i := range bc.Planets {
		p := &bc.Planets[i]
		e := s.spawnPrimary(&p.BodyConfig, components.KindPlanet, i+1)
		s.planets = append(s.planets, e)

		if len(p.Rings) > 0 {
			rings := components.Rings{Bands: make([]components.Band, len(p.Rings))}
			for j, r := range p.Rings {
				rings.Bands[j] = components.Band{
					Inner: float32(r.Inner),
					Outer: float32(r.Outer),
					Color: r.Color.Vec4(),
				}
			}
			s.ringsMap.Add(e, &rings)
		}

		if p.Spot != nil {
			spot := components.Spot{
				Spot: orbit.Spot{
					LatDeg:    p.Spot.Lat,
					LonDeg:    p.Spot.Lon,
					WidthDeg:  p.Spot.Width,
					HeightDeg: p.Spot.Height,
				},
				Color: p.Spot.Color.Vec4(),
			}
			s.spotMap.Add(e, &spot)
		}

		if len(p.Moons) == 0 {
			continue
		}
		if len(p.Moons) > renderer.MaxOccluders {
			slog.Warn("moons beyond shadow capacity cast no eclipse",
				"planet", p.Name, "moons", len(p.Moons), "capacity", renderer.MaxOccluders)
		}
		moons := components.Moons{Entities: make([]ecs.Entity, 0, len(p.Moons))}
		for j := range p.Moons {
			moons.Entities = append(moons.Entities, s.spawnMoon(&p.Moons[j], e, j))
		}
		s.moonsMap.Add(e, &moons)
	}
}

// spawnPrimary creates a body orbiting the origin. The sun gets a zero orbit.
func (s *Scene) spawnPrimary(bc *config.BodyConfig, kind components.Kind, order int) ecs.Entity {
	body := s.newBody(bc, kind)
	orb := components.Orbit{}
	if kind != components.KindSun {
		orb.Params = bc.Orbit.OrbitParams()
	}
	tr := components.Transform{Model: mgl32.Ident4()}
	primary := components.Primary{Order: order}

	e := s.primaryMapper.NewEntity(&body, &orb, &tr, &primary)
	s.surfaceMap.Add(e, &components.Surface{})
	s.focus = append(s.focus, e)
	return e
}

// spawnMoon creates a satellite of parent.
func (s *Scene) spawnMoon(mc *config.MoonConfig, parent ecs.Entity, index int) ecs.Entity {
	body := s.newBody(&mc.BodyConfig, components.KindMoon)
	orb := components.Orbit{Params: mc.Orbit.OrbitParams()}
	tr := components.Transform{Model: mgl32.Ident4()}
	sat := components.Satellite{
		Parent:    parent,
		Placement: mc.Placement,
		TidalLock: mc.TidalLock,
		Index:     index,
	}

	e := s.moonMapper.NewEntity(&body, &orb, &tr, &sat)
	s.surfaceMap.Add(e, &components.Surface{})
	s.focus = append(s.focus, e)
	return e
}

func (s *Scene) newBody(bc *config.BodyConfig, kind components.Kind) components.Body {
	return components.Body{
		Name:          bc.Name,
		Kind:          kind,
		Radius:        float32(bc.Radius),
		TiltDeg:       bc.Tilt(),
		RotationSpeed: bc.RotationSpeed,
		Color:         bc.Color.Vec4(),
		Emissive:      bc.Emissive,
		Caps:          bc.Caps(),
		FocusIndex:    len(s.focus),
	}
}

// RegisterTextures assigns a texture slot to every configured surface layer
// and ring. Slot names are derived from body names, e.g. "earth",
// "earthClouds", "saturnRing0".
func (s *Scene) RegisterTextures(cfg *config.Config, reg TextureRegistry) {
	register := func(e ecs.Entity, bc *config.BodyConfig) {
		base := slotBase(bc.Name)
		t := bc.Textures
		surf := s.surfaceMap.Get(e)
		surf.Day = reg.Register(base, t.Day)
		surf.Night = reg.Register(base+"Night", t.Night)
		surf.Clouds = reg.Register(base+"Clouds", t.Clouds)
		surf.Specular = reg.Register(base+"Specular", t.Specular)
		surf.Normal = reg.Register(base+"Normal", t.Normal)
	}

	register(s.sun, &cfg.Bodies.Sun)
	for i, e := range s.planets {
		p := &cfg.Bodies.Planets[i]
		register(e, &p.BodyConfig)

		if s.ringsMap.Has(e) {
			rings := s.ringsMap.Get(e)
			for j := range rings.Bands {
				rings.Bands[j].Texture = reg.Register(slotBase(p.Name)+"Ring"+strconv.Itoa(j), p.Rings[j].Texture)
			}
		}
		if s.moonsMap.Has(e) {
			for j, m := range s.moonsMap.Get(e).Entities {
				register(m, &p.Moons[j].BodyConfig)
			}
		}
	}
}

// slotBase turns a body name into a lower-camel slot prefix.
func slotBase(name string) string {
	name = strings.ReplaceAll(name, " ", "")
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// Upload builds the shared sphere, one mesh per ring band and one orbit path
// per planet. Geometry is created once and lives until shutdown.
func (s *Scene) Upload(up Uploader, geo config.GeometryConfig) {
	s.sphere = up.UploadMesh(geometry.Sphere(geo.SphereSegments, geo.SphereRings))

	for _, e := range s.planets {
		orb := s.orbitMap.Get(e)
		params := orb.Params
		orb.Path = up.UploadPath(geometry.OrbitPath(geo.OrbitSegments, func(theta float64) mgl32.Vec3 {
			return orbit.PointAt(params, theta)
		}))

		if !s.ringsMap.Has(e) {
			continue
		}
		rings := s.ringsMap.Get(e)
		for j := range rings.Bands {
			b := &rings.Bands[j]
			b.Mesh = up.UploadMesh(geometry.Ring(b.Inner, b.Outer, geo.RingSegments))
		}
	}
	s.uploaded = true
}

// Sphere returns the shared sphere mesh created by Upload.
func (s *Scene) Sphere() renderer.MeshHandle {
	return s.sphere
}
