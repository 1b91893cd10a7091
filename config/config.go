// Package config provides configuration loading and access for the orrery.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orrery/orbit"
	"github.com/pthm-cable/orrery/shading"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid wraps every structural configuration error.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Camera     CameraConfig     `yaml:"camera"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Render     RenderConfig     `yaml:"render"`
	Shading    ShadingConfig    `yaml:"shading"`
	Sunspots   SunspotConfig    `yaml:"sunspots"`
	CME        CMEConfig        `yaml:"cme"`
	Belts      BeltsConfig      `yaml:"belts"`
	Bodies     BodiesConfig     `yaml:"bodies"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Metrics    MetricsConfig    `yaml:"metrics"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds the time base.
type SimulationConfig struct {
	TimeScale     float64 `yaml:"time_scale"`     // multiplies every orbital angular speed
	RotationScale float64 `yaml:"rotation_scale"` // multiplies every spin speed
	StartPaused   bool    `yaml:"start_paused"`
	Seed          int64   `yaml:"seed"`
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	FovDeg            float64 `yaml:"fov_deg"`
	Near              float64 `yaml:"near"`
	Far               float64 `yaml:"far"`
	MinZoom           float64 `yaml:"min_zoom"`
	MaxZoom           float64 `yaml:"max_zoom"`
	InitialZoom       float64 `yaml:"initial_zoom"`
	ZoomPerRadius     float64 `yaml:"zoom_per_radius"`
	TransitionSeconds float64 `yaml:"transition_seconds"`
	YawDeg            float64 `yaml:"yaw_deg"`
	PitchDeg          float64 `yaml:"pitch_deg"`
	OrbitSpeed        float64 `yaml:"orbit_speed"` // radians per second for keyboard orbiting
	ZoomStep          float64 `yaml:"zoom_step"`   // zoom factor per wheel notch
}

// GeometryConfig holds tessellation levels.
type GeometryConfig struct {
	SphereSegments int `yaml:"sphere_segments"`
	SphereRings    int `yaml:"sphere_rings"`
	RingSegments   int `yaml:"ring_segments"`
	OrbitSegments  int `yaml:"orbit_segments"`
}

// RenderConfig holds layer toggles and asset locations.
type RenderConfig struct {
	ShowOrbits bool    `yaml:"show_orbits"`
	ShowBelts  bool    `yaml:"show_belts"`
	ShowCME    bool    `yaml:"show_cme"`
	ShowLabels bool    `yaml:"show_labels"`
	OrbitColor RGBA    `yaml:"orbit_color"`
	ClearColor RGBA    `yaml:"clear_color"`
	ShaderDir  string  `yaml:"shader_dir"`
	TextureDir string  `yaml:"texture_dir"`
	LabelSize  float64 `yaml:"label_size"`
}

// ShadingConfig mirrors shading.Params.
type ShadingConfig struct {
	Ambient             float64 `yaml:"ambient"`
	UmbraLevel          float64 `yaml:"umbra_level"`
	PenumbraScale       float64 `yaml:"penumbra_scale"`
	TerminatorThreshold float64 `yaml:"terminator_threshold"`
	TerminatorBand      float64 `yaml:"terminator_band"`
	NightLevel          float64 `yaml:"night_level"`
	NightBlendRange     float64 `yaml:"night_blend_range"`
	Shininess           float64 `yaml:"shininess"`
	SpecularStrength    float64 `yaml:"specular_strength"`
	CloudSpeed          float64 `yaml:"cloud_speed"`
}

// SunspotConfig mirrors shading.SunspotParams.
type SunspotConfig struct {
	Scale     float64 `yaml:"scale"`
	Drift     float64 `yaml:"drift"`
	Threshold float64 `yaml:"threshold"`
	Darkness  float64 `yaml:"darkness"`
}

// CMEConfig holds coronal mass ejection parameters.
type CMEConfig struct {
	MinPerBurst     int     `yaml:"min_per_burst"`
	MaxPerBurst     int     `yaml:"max_per_burst"`
	MaxParticles    int     `yaml:"max_particles"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	DecayRate       float64 `yaml:"decay_rate"`
	IntervalMin     float64 `yaml:"interval_min"` // seconds between bursts
	IntervalMax     float64 `yaml:"interval_max"`
	Spread          float64 `yaml:"spread"` // random velocity added to the radial direction
	SpeedMin        float64 `yaml:"speed_min"`
	SpeedMax        float64 `yaml:"speed_max"`
	SizeMin         float64 `yaml:"size_min"`
	SizeMax         float64 `yaml:"size_max"`
	Color           RGBA    `yaml:"color"`
}

// BeltsConfig holds the two point-field belts.
type BeltsConfig struct {
	Asteroid BeltConfig `yaml:"asteroid"`
	Kuiper   BeltConfig `yaml:"kuiper"`
}

// BeltConfig describes one belt of small bodies.
type BeltConfig struct {
	Inner     float64 `yaml:"inner"`
	Outer     float64 `yaml:"outer"`
	Thickness float64 `yaml:"thickness"`
	Count     int     `yaml:"count"`
	BaseSpeed float64 `yaml:"base_speed"` // angular speed at the inner edge
	Color     RGBA    `yaml:"color"`
	PointSize float64 `yaml:"point_size"`
}

// BodiesConfig is the body hierarchy: one sun, its planets, their moons.
type BodiesConfig struct {
	Sun     BodyConfig     `yaml:"sun"`
	Planets []PlanetConfig `yaml:"planets"`
}

// RGBA is a linear color with components in [0, 1]. Alpha defaults to 1
// when only three components are given.
type RGBA []float64

// BodyConfig holds the attributes shared by every body.
type BodyConfig struct {
	Name          string       `yaml:"name"`
	Radius        float64      `yaml:"radius"`
	Color         RGBA         `yaml:"color"`
	Emissive      bool         `yaml:"emissive"`
	AxialTiltDeg  *float64     `yaml:"axial_tilt,omitempty"`
	RotationSpeed float64      `yaml:"rotation_speed"`
	Orbit         *OrbitConfig `yaml:"orbit,omitempty"`
	Textures      Textures     `yaml:"textures"`
	Capabilities  []string     `yaml:"capabilities"`
}

// OrbitConfig is an orbit descriptor. Angles are in degrees.
type OrbitConfig struct {
	Radius       float64 `yaml:"radius"`
	Eccentricity float64 `yaml:"eccentricity"`
	Inclination  float64 `yaml:"inclination"`
	Speed        float64 `yaml:"speed"`
	StartAngle   float64 `yaml:"start_angle"`
}

// Textures names the texture file of each surface layer, relative to
// render.texture_dir. Empty means none.
type Textures struct {
	Day      string `yaml:"day,omitempty"`
	Night    string `yaml:"night,omitempty"`
	Clouds   string `yaml:"clouds,omitempty"`
	Specular string `yaml:"specular,omitempty"`
	Normal   string `yaml:"normal,omitempty"`
}

// PlanetConfig is a body orbiting the sun.
type PlanetConfig struct {
	BodyConfig `yaml:",inline"`
	Moons      []MoonConfig `yaml:"moons,omitempty"`
	Rings      []RingConfig `yaml:"rings,omitempty"`
	Spot       *SpotConfig  `yaml:"spot,omitempty"`
}

// MoonConfig is a body orbiting a planet. OrbitalTilt and InheritTilt select
// the orbital plane; see orbit.ResolvePlacement.
type MoonConfig struct {
	BodyConfig  `yaml:",inline"`
	OrbitalTilt *float64 `yaml:"orbital_tilt,omitempty"`
	InheritTilt bool     `yaml:"inherit_tilt"`
	TidalLock   bool     `yaml:"tidal_lock"`

	// Placement is resolved after loading.
	Placement orbit.Placement `yaml:"-"`
}

// RingConfig is a flat ring in a planet's equatorial plane.
type RingConfig struct {
	Inner   float64 `yaml:"inner"`
	Outer   float64 `yaml:"outer"`
	Color   RGBA    `yaml:"color"`
	Texture string  `yaml:"texture,omitempty"`
}

// SpotConfig is a surface feature. Angles are in degrees.
type SpotConfig struct {
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  RGBA    `yaml:"color"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	LogInterval         float64 `yaml:"log_interval"` // seconds between perf log lines
}

// MetricsConfig holds the Prometheus endpoint. An empty address disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
	Path   string `yaml:"path"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	// FocusOrder lists body names in focus-cycling order: sun, then each
	// planet followed by its moons.
	FocusOrder []string
	MoonCount  int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.sanitize()
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports structurally impossible configurations.
func (c *Config) Validate() error {
	var errs []error
	if c.Bodies.Sun.Name == "" {
		errs = append(errs, fmt.Errorf("%w: bodies.sun has no name", ErrInvalid))
	}
	seen := map[string]bool{}
	check := func(name, where string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%w: %s has no name", ErrInvalid, where))
			return
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("%w: duplicate body name %q", ErrInvalid, name))
		}
		seen[name] = true
	}
	check(c.Bodies.Sun.Name, "bodies.sun")
	for i, p := range c.Bodies.Planets {
		check(p.Name, fmt.Sprintf("bodies.planets[%d]", i))
		if p.Orbit == nil {
			errs = append(errs, fmt.Errorf("%w: planet %q has no orbit", ErrInvalid, p.Name))
		}
		for j, m := range p.Moons {
			check(m.Name, fmt.Sprintf("bodies.planets[%d].moons[%d]", i, j))
			if m.Orbit == nil {
				errs = append(errs, fmt.Errorf("%w: moon %q has no orbit", ErrInvalid, m.Name))
			}
		}
	}
	if c.CME.MinPerBurst > c.CME.MaxPerBurst {
		errs = append(errs, fmt.Errorf("%w: cme.min_per_burst %d > max_per_burst %d", ErrInvalid, c.CME.MinPerBurst, c.CME.MaxPerBurst))
	}
	if c.CME.IntervalMin > c.CME.IntervalMax {
		errs = append(errs, fmt.Errorf("%w: cme.interval_min > interval_max", ErrInvalid))
	}
	return errors.Join(errs...)
}

// minRadius replaces non-positive radii.
const minRadius = 0.05

// maxEccentricity keeps orbits closed.
const maxEccentricity = 0.99

// minDecayRate keeps CME particle life strictly decreasing.
const minDecayRate = 0.01

// sanitize clamps physically meaningless values at the boundary. It warns
// instead of failing so a sloppy config still renders.
func (c *Config) sanitize() {
	fixBody := func(b *BodyConfig) {
		if b.Radius <= 0 {
			slog.Warn("non-positive body radius replaced", "body", b.Name, "radius", b.Radius, "using", minRadius)
			b.Radius = minRadius
		}
		if b.Orbit == nil {
			return
		}
		o := b.Orbit
		if o.Eccentricity < 0 || o.Eccentricity > maxEccentricity {
			e := min(max(o.Eccentricity, 0), maxEccentricity)
			slog.Warn("eccentricity clamped", "body", b.Name, "eccentricity", o.Eccentricity, "using", e)
			o.Eccentricity = e
		}
		if o.Radius <= 0 {
			slog.Warn("non-positive orbit radius replaced", "body", b.Name, "radius", o.Radius, "using", minRadius)
			o.Radius = minRadius
		}
	}

	if c.CME.DecayRate <= 0 {
		slog.Warn("non-positive cme decay rate replaced", "decay_rate", c.CME.DecayRate, "using", minDecayRate)
		c.CME.DecayRate = minDecayRate
	}

	fixBody(&c.Bodies.Sun)
	for i := range c.Bodies.Planets {
		p := &c.Bodies.Planets[i]
		fixBody(&p.BodyConfig)
		for j := range p.Moons {
			fixBody(&p.Moons[j].BodyConfig)
		}
		for j := range p.Rings {
			r := &p.Rings[j]
			if r.Inner > r.Outer {
				slog.Warn("ring radii swapped", "body", p.Name, "inner", r.Inner, "outer", r.Outer)
				r.Inner, r.Outer = r.Outer, r.Inner
			}
		}
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.FocusOrder = c.Derived.FocusOrder[:0]
	c.Derived.FocusOrder = append(c.Derived.FocusOrder, c.Bodies.Sun.Name)
	c.Derived.MoonCount = 0
	for i := range c.Bodies.Planets {
		p := &c.Bodies.Planets[i]
		c.Derived.FocusOrder = append(c.Derived.FocusOrder, p.Name)
		for j := range p.Moons {
			m := &p.Moons[j]
			m.Placement = orbit.ResolvePlacement(m.OrbitalTilt, m.InheritTilt)
			c.Derived.FocusOrder = append(c.Derived.FocusOrder, m.Name)
			c.Derived.MoonCount++
		}
	}
}

// OrbitParams converts the descriptor to kernel form.
func (o *OrbitConfig) OrbitParams() orbit.Orbit {
	if o == nil {
		return orbit.Orbit{}
	}
	return orbit.Orbit{
		Radius:         o.Radius,
		Eccentricity:   o.Eccentricity,
		InclinationDeg: o.Inclination,
		Speed:          o.Speed,
		StartAngle:     o.StartAngle * math.Pi / 180,
	}
}

// Tilt returns the axial tilt in degrees, zero when absent.
func (b *BodyConfig) Tilt() float64 {
	if b.AxialTiltDeg == nil {
		return 0
	}
	return *b.AxialTiltDeg
}

// Caps parses the capability names. Unknown names are logged and ignored.
func (b *BodyConfig) Caps() shading.Capabilities {
	var caps shading.Capabilities
	for _, name := range b.Capabilities {
		c := shading.ParseCapability(name)
		if c == 0 {
			slog.Warn("unknown capability", "body", b.Name, "capability", name)
			continue
		}
		caps |= c
	}
	return caps
}

// Vec4 returns the color with alpha defaulting to 1.
func (c RGBA) Vec4() mgl32.Vec4 {
	out := mgl32.Vec4{1, 1, 1, 1}
	for i := 0; i < len(c) && i < 4; i++ {
		out[i] = float32(c[i])
	}
	return out
}

// Params converts the shading section.
func (s ShadingConfig) Params() shading.Params {
	return shading.Params{
		Ambient:             float32(s.Ambient),
		UmbraLevel:          float32(s.UmbraLevel),
		PenumbraScale:       float32(s.PenumbraScale),
		TerminatorThreshold: float32(s.TerminatorThreshold),
		TerminatorBand:      float32(s.TerminatorBand),
		NightLevel:          float32(s.NightLevel),
		NightBlendRange:     float32(s.NightBlendRange),
		Shininess:           float32(s.Shininess),
		SpecularStrength:    float32(s.SpecularStrength),
		CloudSpeed:          float32(s.CloudSpeed),
	}
}

// Params converts the sunspot section.
func (s SunspotConfig) Params() shading.SunspotParams {
	return shading.SunspotParams{Scale: s.Scale, Drift: s.Drift, Threshold: s.Threshold, Darkness: s.Darkness}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
