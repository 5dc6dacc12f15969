package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseCull)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame(i == 0, 42)
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.MinFrameDuration > stats.AvgFrameDuration || stats.MaxFrameDuration < stats.AvgFrameDuration {
		t.Errorf("expected min <= avg <= max, got %v <= %v <= %v",
			stats.MinFrameDuration, stats.AvgFrameDuration, stats.MaxFrameDuration)
	}
	if _, ok := stats.PhaseAvg[PhaseCull]; !ok {
		t.Error("expected cull phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseDraw]; !ok {
		t.Error("expected draw phase to be tracked")
	}
	if stats.Rebuilds != 1 {
		t.Errorf("expected 1 rebuild, got %d", stats.Rebuilds)
	}
	if stats.AvgRebuildCost <= 0 {
		t.Error("expected positive rebuild cost")
	}
	if stats.Primitives != 42 {
		t.Errorf("expected 42 primitives, got %d", stats.Primitives)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseCull)
		pc.EndFrame(true, i)
	}

	stats := pc.Stats()

	// Only the last five frames remain
	if stats.Rebuilds != 5 {
		t.Errorf("expected 5 rebuilds in window, got %d", stats.Rebuilds)
	}
	if stats.Primitives != 9 {
		t.Errorf("expected latest primitive count 9, got %d", stats.Primitives)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame(false, 0)
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_SingleSampleHasNoSpread(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.StartFrame()
	pc.EndFrame(false, 0)

	if sd := pc.Stats().StdDevFrameDuration; sd != 0 {
		t.Errorf("expected zero stddev for a single sample, got %v", sd)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameInterval < 15*time.Millisecond {
		t.Errorf("expected frame interval >= 15ms, got %v", stats.FrameInterval)
	}
	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrameDuration: 1500 * time.Microsecond,
		Rebuilds:         3,
		Primitives:       100,
		PhasePct:         map[string]float64{PhaseCull: 60, PhaseDraw: 40},
	}

	row := s.ToCSV(600)
	if row.Frame != 600 || row.AvgFrameUS != 1500 || row.Rebuilds != 3 || row.Primitives != 100 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.CullPct != 60 || row.DrawPct != 40 || row.InputPct != 0 {
		t.Errorf("unexpected phase percentages %+v", row)
	}
}
