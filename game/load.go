package game

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/primes"
	"github.com/pthm-cable/polar/telemetry"
)

// Stage identifies the part of loading currently running.
type Stage int32

const (
	StageIdle Stage = iota
	StagePrimes
	StagePoints
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Starting..."
	case StagePrimes:
		return "Finding primes..."
	case StagePoints:
		return "Generating points..."
	case StageDone:
		return "Done"
	}
	return "Unknown"
}

// Loader runs the one-time load stage and exposes its progress to a loading screen.
// Stage and Progress are safe to read from another goroutine while Run executes.
type Loader struct {
	stage    atomic.Int32
	Progress field.Progress
}

// Stage returns the stage currently running.
func (l *Loader) Stage() Stage {
	return Stage(l.stage.Load())
}

// Run builds the prime table and generates the field for [1, maxNumber).
// It blocks until both steps finish; there is no cancellation.
func (l *Loader) Run(maxNumber uint64, pool *parallel.Pool) (field.Field, telemetry.LoadReport) {
	slog.Info("loading", "max_number", maxNumber, "workers", pool.Workers())

	l.stage.Store(int32(StagePrimes))
	start := time.Now()
	oracle := primes.Build(maxNumber)
	oracleTime := time.Since(start)
	slog.Info("primes ready", "count", oracle.Count(), "duration", oracleTime)

	l.stage.Store(int32(StagePoints))
	start = time.Now()
	f := field.Generate(maxNumber, oracle, pool, &l.Progress)
	generateTime := time.Since(start)
	slog.Info("points ready", "particles", len(f), "duration", generateTime)

	l.stage.Store(int32(StageDone))

	return f, telemetry.LoadReport{
		MaxNumber:  maxNumber,
		Particles:  len(f),
		Primes:     f.Primes(),
		Workers:    pool.Workers(),
		OracleMS:   oracleTime.Milliseconds(),
		GenerateMS: generateTime.Milliseconds(),
	}
}
