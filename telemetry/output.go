package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/polar/config"
)

// LoadReport describes one run of the load stage.
type LoadReport struct {
	MaxNumber  uint64 `csv:"max_number"`
	Particles  int    `csv:"particles"`
	Primes     int    `csv:"primes"`
	Workers    int    `csv:"workers"`
	OracleMS   int64  `csv:"oracle_ms"`
	GenerateMS int64  `csv:"generate_ms"`
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir      string
	loadFile *os.File
	perfFile *os.File

	// Track if headers have been written
	perfHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled); all methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "load.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating load.csv: %w", err)
	}
	om.loadFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.loadFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteLoad writes the load report to load.csv.
func (om *OutputManager) WriteLoad(r LoadReport) error {
	if om == nil {
		return nil
	}
	if err := gocsv.Marshal([]LoadReport{r}, om.loadFile); err != nil {
		return fmt.Errorf("writing load report: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(frame)}

	if !om.perfHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.loadFile, om.perfFile} {
		if f != nil {
			if err := f.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
