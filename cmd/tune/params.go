// Package main tunes worker pool parameters for batch building.
package main

import (
	"math"

	"github.com/pthm-cable/polar/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the pool parameters for a machine with maxWorkers CPUs.
// The threshold is searched in log2 space.
func NewParamVector(maxWorkers int) *ParamVector {
	if maxWorkers < 2 {
		maxWorkers = 2
	}
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "workers", Path: "parallel.workers", Min: 1, Max: float64(maxWorkers), Default: float64(maxWorkers)},
			{Name: "log2_threshold", Path: "parallel.threshold", Min: 8, Max: 20, Default: 12},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// Pool returns the integer worker count and threshold for a raw vector.
func (pv *ParamVector) Pool(values []float64) (workers, threshold int) {
	clamped := pv.Clamp(values)
	workers = int(math.Round(clamped[0]))
	threshold = 1 << int(math.Round(clamped[1]))
	return workers, threshold
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	cfg.Parallel.Workers, cfg.Parallel.Threshold = pv.Pool(values)
}

// BestConfig returns a copy of base with the values applied. base is not modified.
func (pv *ParamVector) BestConfig(base *config.Config, values []float64) *config.Config {
	cfg := *base
	pv.ApplyToConfig(&cfg, values)
	return &cfg
}
