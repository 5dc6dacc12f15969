package main

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/pthm-cable/polar/batch"
	"github.com/pthm-cable/polar/camera"
	"github.com/pthm-cable/polar/config"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/view"
)

// sweepZoomLevels covers dense full-field frames through heavily culled ones.
var sweepZoomLevels = []int{0, 50, 150, 300, 600}

// FitnessEvaluator times batch builds over a fixed field.
type FitnessEvaluator struct {
	params *ParamVector
	cfg    *config.Config
	field  field.Field
	reps   int

	mu          sync.Mutex
	bestFitness float64
	lastBuilds  int
}

// NewFitnessEvaluator creates a new evaluator over f.
func NewFitnessEvaluator(params *ParamVector, cfg *config.Config, f field.Field, reps int) *FitnessEvaluator {
	if reps < 1 {
		reps = 1
	}
	return &FitnessEvaluator{
		params:      params,
		cfg:         cfg,
		field:       f,
		reps:        reps,
		bestFitness: math.Inf(1),
	}
}

// Evaluate returns the median time in milliseconds to build one batch per
// sweep zoom level with the pool described by raw.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	workers, threshold := fe.params.Pool(raw)
	pool := parallel.NewPool(workers, threshold)
	defer pool.Stop()

	builder := batch.NewBuilder(pool, fe.cfg.Derived.SpriteScale)
	projector := camera.New(fe.cfg.Derived.BasePixelRate, fe.cfg.Derived.ZoomBase, fe.cfg.Derived.ScreenW32, fe.cfg.Derived.ScreenH32)

	var dst []batch.Primitive
	samples := make([]float64, 0, fe.reps)
	builds := 0
	for r := 0; r < fe.reps; r++ {
		start := time.Now()
		for _, zoom := range sweepZoomLevels {
			dst = builder.Build(dst, fe.field, view.State{ZoomLevel: zoom, DrawNonPrimes: true}, projector)
			builds++
		}
		samples = append(samples, float64(time.Since(start))/float64(time.Millisecond))
	}

	fitness := median(samples)

	fe.mu.Lock()
	fe.lastBuilds = builds
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.mu.Unlock()

	return fitness
}

// BestFitness returns the lowest fitness seen so far.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// LastBuilds returns the number of builds timed by the most recent Evaluate call.
func (fe *FitnessEvaluator) LastBuilds() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBuilds
}

func median(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
