package renderer

import "log/slog"

// tri is a cached boolean that may be unknown.
type tri int8

const (
	unknown tri = iota
	off
	on
)

func triOf(v bool) tri {
	if v {
		return on
	}
	return off
}

// Stats counts API calls issued and skipped during one frame.
type Stats struct {
	DrawCalls       int
	TextureBinds    int
	TextureSkips    int
	ToggleWrites    int
	ToggleSkips     int
	ProgramSwitches int
	StateChanges    int
	StateSkips      int
}

// Issued returns the number of cached state calls that reached the backend.
func (s Stats) Issued() int {
	return s.TextureBinds + s.ToggleWrites + s.ProgramSwitches + s.StateChanges
}

// Skipped returns the number of cached state calls that were dropped.
func (s Stats) Skipped() int {
	return s.TextureSkips + s.ToggleSkips + s.StateSkips
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("draws", s.DrawCalls),
		slog.Int("issued", s.Issued()),
		slog.Int("skipped", s.Skipped()),
		slog.Int("tex_binds", s.TextureBinds),
		slog.Int("toggle_writes", s.ToggleWrites),
	)
}

// StateCache mirrors the GPU state last written through it. It is only a
// de-duplication aid and never a source of truth; Reset forgets everything
// and Invalidate only what outside drawing may have changed.
type StateCache struct {
	backend Backend
	locs    *[NumToggles]Location
	stats   *Stats

	program    Program
	programSet bool
	units      [NumTextureUnits]Texture
	unitSet    [NumTextureUnits]bool
	toggles    [NumToggles]tri
	culling    tri
}

// NewStateCache wraps b. locs maps each toggle to its uniform location.
func NewStateCache(b Backend, locs *[NumToggles]Location, stats *Stats) *StateCache {
	if stats == nil {
		stats = &Stats{}
	}
	return &StateCache{backend: b, locs: locs, stats: stats}
}

// Reset marks every cached value unknown so the next write of each goes
// through.
func (c *StateCache) Reset() {
	c.programSet = false
	c.unitSet = [NumTextureUnits]bool{}
	c.toggles = [NumToggles]tri{}
	c.culling = unknown
}

// Invalidate forgets the state that raylib's own batch may change between
// mesh passes: the current program, texture unit 0 and culling. Uniform
// values live in the program object and units 1 and up are never touched by
// the batch, so their cached values stay valid across frames.
func (c *StateCache) Invalidate() {
	c.programSet = false
	c.unitSet[UnitDay] = false
	c.culling = unknown
}

// UseProgram switches programs if p is not already current.
func (c *StateCache) UseProgram(p Program) {
	if c.programSet && c.program == p {
		return
	}
	c.backend.UseProgram(p)
	c.program = p
	c.programSet = true
	c.stats.ProgramSwitches++
}

// BindTexture binds t to unit unless it is already bound there.
func (c *StateCache) BindTexture(unit int, t Texture) {
	if unit < 0 || unit >= NumTextureUnits {
		return
	}
	if c.unitSet[unit] && c.units[unit] == t {
		c.stats.TextureSkips++
		return
	}
	c.backend.BindTexture(unit, t)
	c.units[unit] = t
	c.unitSet[unit] = true
	c.stats.TextureBinds++
}

// SetToggle writes a boolean uniform unless it already holds v. Toggles the
// current program does not declare are skipped.
func (c *StateCache) SetToggle(t Toggle, v bool) {
	if t < 0 || t >= NumToggles {
		return
	}
	loc := c.locs[t]
	if loc == NoLocation {
		return
	}
	want := triOf(v)
	if c.toggles[t] == want {
		c.stats.ToggleSkips++
		return
	}
	var f float32
	if v {
		f = 1
	}
	c.backend.SetFloat(loc, f)
	c.toggles[t] = want
	c.stats.ToggleWrites++
}

// SetCulling toggles back-face culling unless already in that state.
func (c *StateCache) SetCulling(enabled bool) {
	want := triOf(enabled)
	if c.culling == want {
		c.stats.StateSkips++
		return
	}
	c.backend.SetCulling(enabled)
	c.culling = want
	c.stats.StateChanges++
}
