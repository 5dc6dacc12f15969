// Package config provides configuration loading and access for the visualiser.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxSupported is the largest upper bound accepted for particle generation.
// Source integers stay below 2^32 so they fit the sieve and float32 positions stay finite.
const MaxSupported uint64 = 1 << 32

// Config holds all visualiser configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	View      ViewConfig      `yaml:"view"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Palette   PaletteConfig   `yaml:"palette"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig holds particle field generation parameters.
type FieldConfig struct {
	MaxNumber uint64 `yaml:"max_number"` // Exclusive upper bound of source integers (overridden by the CLI argument)
}

// ViewConfig holds projection and zoom parameters.
type ViewConfig struct {
	BasePixelRate       float64 `yaml:"base_pixel_rate"`       // Pixels per world unit at zoom level 0
	ZoomBase            float64 `yaml:"zoom_base"`             // pixel_rate = base / zoom_base^zoom_level
	MaxZoomLevel        int     `yaml:"max_zoom_level"`        // Zoom-out stops once the level exceeds this
	SpriteScale         float64 `yaml:"sprite_scale"`          // Destination size of each 1x1 colour sample
	FullscreenZoomQuirk bool    `yaml:"fullscreen_zoom_quirk"` // Fullscreen toggle also zooms out one level
}

// ParallelConfig holds worker pool parameters.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
	Threshold int `yaml:"threshold"` // Below this many elements work runs on the caller
}

// PaletteConfig holds the three colour table entries as RGB triples in [0, 1].
type PaletteConfig struct {
	Background []float64 `yaml:"background"`
	NonPrime   []float64 `yaml:"non_prime"`
	Prime      []float64 `yaml:"prime"`
}

// TelemetryConfig holds performance logging parameters.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`  // Frames averaged by the perf collector
	LogInterval int `yaml:"log_interval"` // Frames between perf log lines / CSV rows
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Workers       int     // Effective worker count
	BasePixelRate float32 // View.BasePixelRate as float32
	ZoomBase      float32 // View.ZoomBase as float32
	SpriteScale   float32 // View.SpriteScale as float32
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the projector or palette cannot work with.
func (c *Config) validate() error {
	if c.View.BasePixelRate <= 0 {
		return fmt.Errorf("view.base_pixel_rate must be positive, got %v", c.View.BasePixelRate)
	}
	if c.View.ZoomBase <= 1 {
		return fmt.Errorf("view.zoom_base must be greater than 1, got %v", c.View.ZoomBase)
	}
	if c.View.MaxZoomLevel < 0 {
		return fmt.Errorf("view.max_zoom_level must not be negative, got %d", c.View.MaxZoomLevel)
	}
	for name, rgb := range map[string][]float64{
		"background": c.Palette.Background,
		"non_prime":  c.Palette.NonPrime,
		"prime":      c.Palette.Prime,
	} {
		if len(rgb) != 3 {
			return fmt.Errorf("palette.%s must have 3 components, got %d", name, len(rgb))
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Workers = c.Parallel.Workers
	if c.Derived.Workers <= 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}
	c.Derived.BasePixelRate = float32(c.View.BasePixelRate)
	c.Derived.ZoomBase = float32(c.View.ZoomBase)
	c.Derived.SpriteScale = float32(c.View.SpriteScale)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ParseMaxNumber reads the optional positional upper bound.
// Missing, non-numeric, zero or unsupported values fall back silently.
func ParseMaxNumber(args []string, fallback uint64) uint64 {
	if len(args) == 0 {
		return fallback
	}
	n, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil || n == 0 || n > MaxSupported {
		slog.Debug("ignoring max number argument", "arg", args[0], "fallback", fallback)
		return fallback
	}
	return n
}
