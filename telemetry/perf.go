// Package telemetry records frame timings and writes run output.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseInput = "input"
	PhaseCull  = "cull"
	PhaseDraw  = "draw"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
	Rebuilt       bool
	Primitives    int
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock interval between presented frames
	lastFrameTime time.Time
	frameInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame(rebuilt bool, primitives int) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
		Rebuilt:       rebuilt,
		Primitives:    primitives,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records presentation timing for FPS.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameInterval = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame work timing
	AvgFrameDuration    time.Duration
	MinFrameDuration    time.Duration
	MaxFrameDuration    time.Duration
	StdDevFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Batch rebuilds in the window and the average cost of one
	Rebuilds       int
	AvgRebuildCost time.Duration
	Primitives     int // Batch size in the most recent frame

	// Presentation timing
	FrameInterval time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameInterval > 0 {
		fps = float64(time.Second) / float64(p.frameInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameInterval: p.frameInterval,
			FPS:           fps,
		}
	}

	durations := make([]float64, p.sampleCount)
	var minFrame, maxFrame time.Duration
	var rebuilds int
	var rebuildTotal time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.FrameDuration)

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		if s.Rebuilt {
			rebuilds++
			rebuildTotal += s.Phases[PhaseCull]
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	mean, std := stat.MeanStdDev(durations, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	avgFrame := time.Duration(mean)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgFrame > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgFrame) * 100
		}
	}

	var avgRebuild time.Duration
	if rebuilds > 0 {
		avgRebuild = rebuildTotal / time.Duration(rebuilds)
	}

	latest := (p.writeIndex - 1 + p.windowSize) % p.windowSize

	return PerfStats{
		AvgFrameDuration:    avgFrame,
		MinFrameDuration:    minFrame,
		MaxFrameDuration:    maxFrame,
		StdDevFrameDuration: time.Duration(std),
		PhaseAvg:            phaseAvg,
		PhasePct:            phasePct,
		Rebuilds:            rebuilds,
		AvgRebuildCost:      avgRebuild,
		Primitives:          p.samples[latest].Primitives,
		FrameInterval:       p.frameInterval,
		FPS:                 fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Int64("stddev_frame_us", s.StdDevFrameDuration.Microseconds()),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Int64("avg_rebuild_us", s.AvgRebuildCost.Microseconds()),
		slog.Int("primitives", s.Primitives),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range []string{PhaseInput, PhaseCull, PhaseDraw} {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame         int64   `csv:"frame"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	StdDevFrameUS int64   `csv:"stddev_frame_us"`
	Rebuilds      int     `csv:"rebuilds"`
	AvgRebuildUS  int64   `csv:"avg_rebuild_us"`
	Primitives    int     `csv:"primitives"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	CullPct       float64 `csv:"cull_pct"`
	DrawPct       float64 `csv:"draw_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:         frame,
		AvgFrameUS:    s.AvgFrameDuration.Microseconds(),
		MinFrameUS:    s.MinFrameDuration.Microseconds(),
		MaxFrameUS:    s.MaxFrameDuration.Microseconds(),
		StdDevFrameUS: s.StdDevFrameDuration.Microseconds(),
		Rebuilds:      s.Rebuilds,
		AvgRebuildUS:  s.AvgRebuildCost.Microseconds(),
		Primitives:    s.Primitives,
		FPS:           s.FPS,
		InputPct:      s.PhasePct[PhaseInput],
		CullPct:       s.PhasePct[PhaseCull],
		DrawPct:       s.PhasePct[PhaseDraw],
	}
}
