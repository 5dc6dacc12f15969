// Command ebitenview renders the polar prime field with ebiten instead of raylib.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pthm-cable/polar/config"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/game"
	"github.com/pthm-cable/polar/palette"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/telemetry"
	"github.com/pthm-cable/polar/view"
)

var bindings = []struct {
	key    ebiten.Key
	action view.Action
}{
	{ebiten.KeyW, view.ZoomIn},
	{ebiten.KeyS, view.ZoomOut},
	{ebiten.KeyF, view.ToggleFullscreen},
	{ebiten.KeyD, view.ToggleNonPrimes},
	{ebiten.KeyEscape, view.Quit},
}

// host toggles ebiten's fullscreen mode.
type host struct{}

func (host) ToggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

type loaded struct {
	field  field.Field
	report telemetry.LoadReport
}

type viewer struct {
	cfg    *config.Config
	pool   *parallel.Pool
	output *telemetry.OutputManager

	loader *game.Loader
	done   chan loaded
	ctx    *game.Context

	pending game.EventQueue
	quit    bool

	background color.RGBA
	sprites    []*ebiten.Image
	opts       ebiten.DrawImageOptions

	width, height int
	logStats      bool
}

func newViewer(cfg *config.Config, pool *parallel.Pool, output *telemetry.OutputManager, maxNumber uint64, logStats bool) *viewer {
	pal := palette.New(cfg.Palette.Background, cfg.Palette.NonPrime, cfg.Palette.Prime)
	strip := ebiten.NewImageFromImage(pal.Image())

	v := &viewer{
		cfg:        cfg,
		pool:       pool,
		output:     output,
		loader:     &game.Loader{},
		done:       make(chan loaded, 1),
		background: pal.Color(palette.Background),
		width:      cfg.Screen.Width,
		height:     cfg.Screen.Height,
		logStats:   logStats,
	}
	for _, c := range []palette.Class{palette.Background, palette.NonPrime, palette.Prime} {
		r := palette.SourceRect(c)
		v.sprites = append(v.sprites, strip.SubImage(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)).(*ebiten.Image))
	}

	go func() {
		f, report := v.loader.Run(maxNumber, pool)
		v.done <- loaded{f, report}
	}()
	return v
}

func (v *viewer) Update() error {
	if v.ctx == nil {
		select {
		case r := <-v.done:
			if err := v.output.WriteLoad(r.report); err != nil {
				slog.Error("failed to write load report", "error", err)
			}
			v.ctx = game.NewContext(v.cfg, r.field, v.pool)
			v.ctx.Output = v.output
			v.ctx.LogStats = v.logStats
		default:
			if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
				return ebiten.Termination
			}
			return nil
		}
	}

	if v.quit {
		return ebiten.Termination
	}

	// Update can run several times per Draw; edges wait for the next frame
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			v.pending.Push(view.Event{Action: b.action, Edge: view.Pressed})
		}
		if inpututil.IsKeyJustReleased(b.key) {
			v.pending.Push(view.Event{Action: b.action, Edge: view.Released})
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.background)

	if v.ctx == nil {
		v.drawLoading(screen)
		return
	}

	v.ctx.BeginFrame()
	if v.ctx.Drain(&v.pending, host{}) {
		v.quit = true
	}
	primitives, _ := v.ctx.Frame(float32(v.width), float32(v.height))
	for i := range primitives {
		p := &primitives[i]
		v.opts.GeoM.Reset()
		v.opts.GeoM.Scale(float64(p.ScaleX), float64(p.ScaleY))
		v.opts.GeoM.Translate(float64(p.X), float64(p.Y))
		screen.DrawImage(v.sprites[palette.Index(p.Class)], &v.opts)
	}

	s := v.ctx.State()
	primes, nonPrimes := v.ctx.Visible()
	status := fmt.Sprintf("zoom %d (%.4f px/unit) | %d primes, %d others | FPS %.0f",
		s.ZoomLevel, v.ctx.PixelRate(), primes, nonPrimes, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	v.ctx.EndFrame()
}

func (v *viewer) drawLoading(screen *ebiten.Image) {
	barW := float32(v.width) / 2
	barX := (float32(v.width) - barW) / 2
	barY := float32(v.height) / 2

	ebitenutil.DebugPrintAt(screen, v.loader.Stage().String(), int(barX), int(barY)-20)
	vector.DrawFilledRect(screen, barX, barY, barW, 16, color.RGBA{R: 40, G: 40, B: 40, A: 255}, false)
	vector.DrawFilledRect(screen, barX, barY, barW*v.loader.Progress.Fraction(), 16, color.RGBA{R: 100, G: 150, B: 200, A: 255}, false)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
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

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	if cfg.Screen.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Screen.TargetFPS)

	if err := ebiten.RunGame(newViewer(cfg, pool, output, maxNumber, *logStats)); err != nil {
		slog.Error("ebiten exited", "error", err)
		os.Exit(1)
	}
}
