package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/config"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/game"
	"github.com/pthm-cable/polar/palette"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/renderer"
	"github.com/pthm-cable/polar/telemetry"
	"github.com/pthm-cable/polar/ui"
)

const controlsText = "W/S: zoom | D: toggle non-primes | F: fullscreen | H: hide buttons | P: perf | Esc: quit"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *workers > 0 {
		cfg.Derived.Workers = *workers
	}

	// Optional positional argument: exclusive upper bound of source integers
	maxNumber := config.ParseMaxNumber(flag.Args(), cfg.Field.MaxNumber)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	pool := parallel.NewPool(cfg.Derived.Workers, cfg.Parallel.Threshold)
	defer pool.Stop()

	window := renderer.OpenWindow(cfg)
	defer window.Close()

	strip := renderer.NewPaletteTexture(palette.New(cfg.Palette.Background, cfg.Palette.NonPrime, cfg.Palette.Prime))
	strip.Init()
	defer strip.Unload()

	f, ok := load(window, maxNumber, pool, output)
	if !ok {
		return
	}

	ctx := game.NewContext(cfg, f, pool)
	ctx.Output = output
	ctx.LogStats = *logStats

	run(ctx, window, renderer.NewBatchRenderer(strip), cfg.Screen.Title)
	slog.Info("exiting", "frames", ctx.Frames())
}

// load generates the field on a background goroutine while drawing the
// loading screen. It returns false if the window was closed first.
func load(window *renderer.Window, maxNumber uint64, pool *parallel.Pool, output *telemetry.OutputManager) (field.Field, bool) {
	var loader game.Loader
	type result struct {
		field  field.Field
		report telemetry.LoadReport
	}
	done := make(chan result, 1)
	go func() {
		f, report := loader.Run(maxNumber, pool)
		done <- result{f, report}
	}()

	screen := ui.NewLoadingScreen()
	for {
		select {
		case r := <-done:
			if err := output.WriteLoad(r.report); err != nil {
				slog.Error("failed to write load report", "error", err)
			}
			return r.field, true
		default:
		}

		if window.ShouldClose() {
			return nil, false
		}

		w, h := window.Size()
		rl.BeginDrawing()
		screen.Draw(int32(w), int32(h), ui.LoadingData{
			Stage:    loader.Stage().String(),
			Fraction: loader.Progress.Fraction(),
			Done:     loader.Progress.Done(),
		})
		rl.EndDrawing()
	}
}

// run is the frame loop: input, dirty-checked batch rebuild, draw, overlays.
func run(ctx *game.Context, window *renderer.Window, batches *renderer.BatchRenderer, title string) {
	keyboard := renderer.NewKeyboard(renderer.DefaultBindings())
	hud := ui.NewHUD()
	perf := ui.NewPerfPanel(10, 130)
	controls := ui.NewControlsPanel(ui.DefaultButtons())
	showPerf := false

	// Button clicks are drawn after the batch, so they apply on the next frame
	var pending game.EventQueue

	for !window.ShouldClose() {
		ctx.BeginFrame()

		for _, ev := range keyboard.Poll() {
			pending.Push(ev)
		}
		if ctx.Drain(&pending, window) {
			return
		}
		if rl.IsKeyPressed(rl.KeyH) {
			controls.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyP) {
			showPerf = !showPerf
		}

		w, h := window.Size()
		primitives, _ := ctx.Frame(w, h)

		rl.BeginDrawing()
		batches.Draw(primitives)

		s := ctx.State()
		primes, nonPrimes := ctx.Visible()
		hud.Draw(ui.HUDData{
			Title:         title,
			ZoomLevel:     s.ZoomLevel,
			PixelRate:     ctx.PixelRate(),
			Particles:     len(ctx.Field()),
			Primes:        primes,
			NonPrimes:     nonPrimes,
			DrawNonPrimes: s.DrawNonPrimes,
			FPS:           rl.GetFPS(),
		})
		if showPerf {
			perf.Draw(ctx.Stats())
		}
		for _, ev := range controls.Draw(int32(w)) {
			pending.Push(ev)
		}
		hud.DrawControls(int32(h), controlsText)
		rl.EndDrawing()

		ctx.EndFrame()
	}
}
