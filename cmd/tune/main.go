// Package main provides CMA-ES search for the worker pool settings that
// build draw batches fastest on this machine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/polar/config"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/primes"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval      int     `csv:"eval"`
	FitnessMS float64 `csv:"fitness_ms"`
	Workers   int     `csv:"workers"`
	Threshold int     `csv:"threshold"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxNumber := flag.Uint64("max-number", 1000000, "Field size to time builds against")
	reps := flag.Int("reps", 5, "Timed sweeps per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	// The field is generated once and shared by every evaluation
	genPool := parallel.NewPool(runtime.GOMAXPROCS(0), parallel.DefaultThreshold)
	f := field.Generate(*maxNumber, primes.Build(*maxNumber), genPool, nil)
	genPool.Stop()

	params := NewParamVector(runtime.GOMAXPROCS(0))
	evaluator := NewFitnessEvaluator(params, baseCfg, f, *reps)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; timings would interfere
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		raw := params.Denormalize(x)
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = params.Clamp(raw)
		}

		workers, threshold := params.Pool(raw)
		rows := []evalRow{{Eval: evalCount, FitnessMS: fitness, Workers: workers, Threshold: threshold}}
		var werr error
		if evalCount == 1 {
			werr = gocsv.Marshal(rows, logFile)
		} else {
			werr = gocsv.MarshalWithoutHeaders(rows, logFile)
		}
		if werr != nil {
			log.Printf("failed to write log row: %v", werr)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: workers=%d threshold=%d median=%.2fms over %d builds (best=%.2fms) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, workers, threshold, fitness, evaluator.LastBuilds(), bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES search with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Field: %d particles, %d sweeps per evaluation\n", len(f), *reps)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	workers, threshold := params.Pool(bestParams)
	fmt.Printf("Best: workers=%d threshold=%d (%.2fms)\n", workers, threshold, evaluator.BestFitness())

	bestCfg := params.BestConfig(baseCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
