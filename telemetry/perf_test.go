package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeCollector(window int) (*PerfCollector, *fakeClock) {
	pc := NewPerfCollector(window)
	clk := &fakeClock{t: time.Unix(1000, 0)}
	pc.now = clk.now
	return pc, clk
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseOrbits)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[PhaseOrbits]; !ok {
		t.Error("expected orbits phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc, clk := newFakeCollector(10)

	for range 4 {
		pc.StartTick()
		pc.StartPhase(PhaseCME)
		clk.advance(1 * time.Millisecond)
		pc.StartPhase(PhaseRender)
		clk.advance(3 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 4*time.Millisecond {
		t.Fatalf("avg tick = %v, want 4ms", stats.AvgTickDuration)
	}
	if got := stats.PhasePct[PhaseCME]; got != 25 {
		t.Errorf("cme pct = %v, want 25", got)
	}
	if got := stats.PhasePct[PhaseRender]; got != 75 {
		t.Errorf("render pct = %v, want 75", got)
	}
	if stats.TicksPerSecond != 250 {
		t.Errorf("ticks/s = %v, want 250", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newFakeCollector(3)

	// Three slow ticks, then three fast ones push them out of the window.
	for _, d := range []time.Duration{9, 9, 9, 1, 2, 3} {
		pc.StartTick()
		pc.StartPhase(PhaseOrbits)
		clk.advance(d * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 2*time.Millisecond {
		t.Errorf("avg = %v, want 2ms", stats.AvgTickDuration)
	}
	if stats.MinTickDuration != time.Millisecond || stats.MaxTickDuration != 3*time.Millisecond {
		t.Errorf("min/max = %v/%v", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if pc.LastTick() != 3*time.Millisecond {
		t.Errorf("last tick = %v", pc.LastTick())
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
	if pc.LastTick() != 0 {
		t.Error("expected zero last tick")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clk := newFakeCollector(10)

	pc.RecordFrame()
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("frame duration = %v", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("fps = %v, want 50", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		P95TickDuration: 2 * time.Millisecond,
		PhasePct:        map[string]float64{PhaseBelts: 12.5, PhaseRender: 60},
	}
	row := s.ToCSV(42)
	if row.Tick != 42 || row.AvgTickUS != 1500 || row.P95TickUS != 2000 {
		t.Errorf("row = %+v", row)
	}
	if row.BeltsPct != 12.5 || row.RenderPct != 60 || row.CMEPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
