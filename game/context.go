// Package game ties the particle field, view state and batch builder into a
// per-frame render context that any rendering host can drive.
package game

import (
	"log/slog"

	"github.com/pthm-cable/polar/batch"
	"github.com/pthm-cable/polar/camera"
	"github.com/pthm-cable/polar/config"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/telemetry"
	"github.com/pthm-cable/polar/view"
)

// snapshot is everything the batch depends on besides the field.
type snapshot struct {
	State         view.State
	Width, Height float32
}

// Context holds the render state for one window.
type Context struct {
	cfg        *config.Config
	field      field.Field
	controller view.Controller
	state      view.State

	// Previous frame's snapshot; the batch is rebuilt when it differs
	prev    snapshot
	hasPrev bool

	projector *camera.Projector
	builder   *batch.Builder
	batch     []batch.Primitive
	rebuilt   bool
	primes    int
	nonPrimes int

	perf  *telemetry.PerfCollector
	frame int64

	// Output receives perf rows every telemetry.log_interval frames (nil = disabled)
	Output *telemetry.OutputManager
	// LogStats also logs perf stats via slog at the same interval
	LogStats bool
}

// NewContext creates a render context over a generated field.
func NewContext(cfg *config.Config, f field.Field, pool *parallel.Pool) *Context {
	return &Context{
		cfg:   cfg,
		field: f,
		controller: view.Controller{
			MaxZoomLevel:        cfg.View.MaxZoomLevel,
			FullscreenZoomQuirk: cfg.View.FullscreenZoomQuirk,
		},
		state:     view.Initial(),
		projector: camera.New(cfg.Derived.BasePixelRate, cfg.Derived.ZoomBase, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		builder:   batch.NewBuilder(pool, cfg.Derived.SpriteScale),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
}

// BeginFrame starts frame timing. Input handling follows.
func (c *Context) BeginFrame() {
	c.perf.RecordFrame()
	c.perf.StartFrame()
	c.perf.StartPhase(telemetry.PhaseInput)
}

// HandleEvent applies one input edge and reports whether the user asked to quit.
func (c *Context) HandleEvent(ev view.Event, host view.Host) (quit bool) {
	return c.controller.Apply(&c.state, ev, host)
}

// Frame returns the batch for a frame of the given size. The batch is rebuilt
// only when the view state or frame size changed since the previous frame;
// otherwise the previous batch is returned untouched.
func (c *Context) Frame(width, height float32) (primitives []batch.Primitive, rebuilt bool) {
	c.perf.StartPhase(telemetry.PhaseCull)

	current := snapshot{State: c.state, Width: width, Height: height}
	c.rebuilt = !c.hasPrev || current != c.prev
	if c.rebuilt {
		c.projector.Resize(width, height)
		c.batch = c.builder.Build(c.batch, c.field, c.state, c.projector)
		c.primes, c.nonPrimes = batch.Counts(c.batch)
	}
	c.prev = current
	c.hasPrev = true

	c.perf.StartPhase(telemetry.PhaseDraw)
	return c.batch, c.rebuilt
}

// EndFrame records the frame sample and emits periodic perf output.
func (c *Context) EndFrame() {
	c.perf.EndFrame(c.rebuilt, len(c.batch))
	c.frame++

	interval := int64(c.cfg.Telemetry.LogInterval)
	if interval <= 0 || c.frame%interval != 0 {
		return
	}

	stats := c.perf.Stats()
	if c.LogStats {
		stats.LogStats()
	}
	if err := c.Output.WritePerf(stats, c.frame); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}
}

// State returns the current view state.
func (c *Context) State() view.State {
	return c.state
}

// Field returns the particle field.
func (c *Context) Field() field.Field {
	return c.field
}

// PixelRate returns the pixel rate for the current zoom level.
func (c *Context) PixelRate() float32 {
	return c.projector.PixelRate(c.state.ZoomLevel)
}

// Visible returns the prime and non-prime primitive counts of the current batch.
func (c *Context) Visible() (primes, nonPrimes int) {
	return c.primes, c.nonPrimes
}

// Stats returns aggregated frame timings.
func (c *Context) Stats() telemetry.PerfStats {
	return c.perf.Stats()
}

// Frames returns the number of completed frames.
func (c *Context) Frames() int64 {
	return c.frame
}
