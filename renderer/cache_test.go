package renderer

import "testing"

func allLocations() *[NumToggles]Location {
	var locs [NumToggles]Location
	for i := range locs {
		locs[i] = Location(100 + i)
	}
	return &locs
}

func TestBindTextureDeduplicates(t *testing.T) {
	b := newCountingBackend()
	var stats Stats
	c := NewStateCache(b, allLocations(), &stats)

	c.BindTexture(UnitDay, 5)
	c.BindTexture(UnitDay, 5)
	if got := b.counts["bind"]; got != 1 {
		t.Fatalf("same bind twice issued %d calls, want 1", got)
	}
	if stats.TextureSkips != 1 || stats.TextureBinds != 1 {
		t.Errorf("stats = %+v", stats)
	}

	c.BindTexture(UnitNight, 5)
	c.BindTexture(UnitDay, 6)
	if got := b.counts["bind"]; got != 3 {
		t.Errorf("distinct binds issued %d calls, want 3", got)
	}
}

func TestBindTextureIgnoresBadUnit(t *testing.T) {
	b := newCountingBackend()
	c := NewStateCache(b, allLocations(), nil)
	c.BindTexture(-1, 1)
	c.BindTexture(NumTextureUnits, 1)
	if len(b.calls) != 0 {
		t.Errorf("out of range units reached the backend: %v", b.calls)
	}
}

func TestSetToggleDeduplicates(t *testing.T) {
	b := newCountingBackend()
	var stats Stats
	c := NewStateCache(b, allLocations(), &stats)

	c.SetToggle(ToggleEmissive, true)
	c.SetToggle(ToggleEmissive, true)
	if got := b.counts["float"]; got != 1 {
		t.Fatalf("same toggle twice issued %d writes, want 1", got)
	}
	c.SetToggle(ToggleEmissive, false)
	c.SetToggle(ToggleUseClouds, false)
	if got := b.counts["float"]; got != 3 {
		t.Errorf("writes = %d, want 3", got)
	}
	if stats.ToggleWrites != 3 || stats.ToggleSkips != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSetToggleSkipsAbsentUniform(t *testing.T) {
	b := newCountingBackend()
	locs := allLocations()
	locs[ToggleUseNormal] = NoLocation
	c := NewStateCache(b, locs, nil)

	c.SetToggle(ToggleUseNormal, true)
	if len(b.calls) != 0 {
		t.Errorf("absent toggle reached the backend: %v", b.calls)
	}
}

func TestResetForgetsState(t *testing.T) {
	b := newCountingBackend()
	c := NewStateCache(b, allLocations(), nil)

	c.UseProgram(3)
	c.BindTexture(UnitDay, 9)
	c.SetToggle(ToggleCheckShadow, true)
	c.SetCulling(true)
	c.Reset()
	c.UseProgram(3)
	c.BindTexture(UnitDay, 9)
	c.SetToggle(ToggleCheckShadow, true)
	c.SetCulling(true)

	for kind, want := range map[string]int{"program": 2, "bind": 2, "float": 2, "cull": 2} {
		if got := b.counts[kind]; got != want {
			t.Errorf("%s calls = %d, want %d", kind, got, want)
		}
	}
}

func TestInvalidateKeepsUniformState(t *testing.T) {
	b := newCountingBackend()
	c := NewStateCache(b, allLocations(), nil)

	c.UseProgram(3)
	c.BindTexture(UnitDay, 9)
	c.BindTexture(UnitNight, 10)
	c.SetToggle(ToggleCheckShadow, true)
	c.SetCulling(true)
	c.Invalidate()
	c.UseProgram(3)
	c.BindTexture(UnitDay, 9)
	c.BindTexture(UnitNight, 10)
	c.SetToggle(ToggleCheckShadow, true)
	c.SetCulling(true)

	for kind, want := range map[string]int{"program": 2, "bind": 3, "float": 1, "cull": 2} {
		if got := b.counts[kind]; got != want {
			t.Errorf("%s calls = %d, want %d", kind, got, want)
		}
	}
}

func TestUseProgramAndCullingDeduplicate(t *testing.T) {
	b := newCountingBackend()
	var stats Stats
	c := NewStateCache(b, allLocations(), &stats)

	c.UseProgram(1)
	c.UseProgram(1)
	c.SetCulling(false)
	c.SetCulling(false)
	c.SetCulling(true)
	if b.counts["program"] != 1 || b.counts["cull"] != 2 {
		t.Errorf("counts = %v", b.counts)
	}
	if stats.Issued() != 3 || stats.Skipped() != 1 {
		t.Errorf("issued %d skipped %d", stats.Issued(), stats.Skipped())
	}
}
