// View and palette preview tool - interactive tuning with sliders.
//
// Usage: go run ./cmd/preview [-config path] [-max-number n] [-out path]
package main

import (
	"flag"
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/polar/batch"
	"github.com/pthm-cable/polar/camera"
	"github.com/pthm-cable/polar/config"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/palette"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/primes"
	"github.com/pthm-cable/polar/renderer"
	"github.com/pthm-cable/polar/view"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// PreviewParams holds the tunable view and palette values.
type PreviewParams struct {
	BasePixelRate float32
	ZoomBase      float32
	SpriteScale   float32
	ZoomLevel     int
	DrawNonPrimes bool
	NonPrime      [3]float32
	Prime         [3]float32
}

func paramsFromConfig(cfg *config.Config) PreviewParams {
	p := PreviewParams{
		BasePixelRate: float32(cfg.View.BasePixelRate),
		ZoomBase:      float32(cfg.View.ZoomBase),
		SpriteScale:   float32(cfg.View.SpriteScale),
		DrawNonPrimes: true,
	}
	for i := 0; i < 3; i++ {
		p.NonPrime[i] = float32(cfg.Palette.NonPrime[i])
		p.Prime[i] = float32(cfg.Palette.Prime[i])
	}
	return p
}

// apply writes the tuned values back into cfg.
func (p PreviewParams) apply(cfg *config.Config) {
	cfg.View.BasePixelRate = round(float64(p.BasePixelRate), 100)
	cfg.View.ZoomBase = round(float64(p.ZoomBase), 10000)
	cfg.View.SpriteScale = round(float64(p.SpriteScale), 100)
	for i := 0; i < 3; i++ {
		cfg.Palette.NonPrime[i] = round(float64(p.NonPrime[i]), 100)
		cfg.Palette.Prime[i] = round(float64(p.Prime[i]), 100)
	}
}

func (p PreviewParams) palette(background []float64) palette.Palette {
	return palette.New(background, rgb(p.NonPrime), rgb(p.Prime))
}

func rgb(c [3]float32) []float64 {
	return []float64{float64(c[0]), float64(c[1]), float64(c[2])}
}

func round(v, scale float64) float64 {
	return float64(int64(v*scale+0.5)) / scale
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxNumber := flag.Uint64("max-number", 20000, "Field size to preview")
	outPath := flag.String("out", "preview_config.yaml", "Where Save writes the tuned config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := paramsFromConfig(cfg)
	params := defaults

	pool := parallel.NewPool(cfg.Parallel.Workers, cfg.Parallel.Threshold)
	defer pool.Stop()
	f := field.Generate(*maxNumber, primes.Build(*maxNumber), pool, nil)

	rl.InitWindow(windowWidth, windowHeight, "View Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// Preview is drawn off-screen at its own size, then blitted
	target := rl.LoadRenderTexture(previewSize, previewSize)
	defer rl.UnloadRenderTexture(target)

	strip := renderer.NewPaletteTexture(params.palette(cfg.Palette.Background))
	strip.Init()
	defer func() { strip.Unload() }()

	var primitives []batch.Primitive
	needsRegen := true
	status := ""

	for !rl.WindowShouldClose() {
		if needsRegen {
			strip.Unload()
			strip = renderer.NewPaletteTexture(params.palette(cfg.Palette.Background))
			strip.Init()

			projector := camera.New(params.BasePixelRate, params.ZoomBase, previewSize, previewSize)
			builder := batch.NewBuilder(pool, params.SpriteScale)
			primitives = builder.Build(primitives, f, view.State{ZoomLevel: params.ZoomLevel, DrawNonPrimes: params.DrawNonPrimes}, projector)

			rl.BeginTextureMode(target)
			renderer.NewBatchRenderer(strip).Draw(primitives)
			rl.EndTextureMode()
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down
		rl.DrawTexturePro(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: -previewSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		primeCount, nonPrimeCount := batch.Counts(primitives)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Visible: %d primes, %d others of %d", primeCount, nonPrimeCount, len(f)), 15, statsY, 16, rl.DarkGray)
		rate := camera.New(params.BasePixelRate, params.ZoomBase, previewSize, previewSize).PixelRate(params.ZoomLevel)
		rl.DrawText(fmt.Sprintf("Pixel rate: %.4f", rate), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(status, 15, statsY+40, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("View Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, left, right string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				left, right,
				value, lo, hi,
			)
			panelY += 32
			if v != value {
				needsRegen = true
			}
			return v
		}

		params.BasePixelRate = slider("Base pixel rate", "1", "40", params.BasePixelRate, 1, 40)
		params.ZoomBase = slider("Zoom base", "1.001", "1.1", params.ZoomBase, 1.001, 1.1)
		params.SpriteScale = slider("Sprite scale", "1", "6", params.SpriteScale, 1, 6)
		params.ZoomLevel = int(slider("Zoom level", "0", "1000", float32(params.ZoomLevel), 0, 1000))

		rl.DrawText("Palette", int32(panelX), int32(panelY), 18, rl.DarkGray)
		panelY += 26
		channels := []string{"R", "G", "B"}
		for i := range params.Prime {
			params.Prime[i] = slider("Prime "+channels[i], "0", "1", params.Prime[i], 0, 1)
		}
		for i := range params.NonPrime {
			params.NonPrime[i] = slider("Non-prime "+channels[i], "0", "1", params.NonPrime[i], 0, 1)
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.DrawNonPrimes, "Primes Only", "Show All")) {
			params.DrawNonPrimes = !params.DrawNonPrimes
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save") {
			params.apply(cfg)
			if err := cfg.WriteYAML(*outPath); err != nil {
				status = fmt.Sprintf("save failed: %v", err)
			} else {
				status = "saved " + *outPath
			}
		}

		rl.DrawText("Press C to copy view/palette YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			params.apply(cfg)
			data, err := yaml.Marshal(struct {
				View    config.ViewConfig    `yaml:"view"`
				Palette config.PaletteConfig `yaml:"palette"`
			}{cfg.View, cfg.Palette})
			if err != nil {
				status = fmt.Sprintf("copy failed: %v", err)
			} else {
				rl.SetClipboardText(string(data))
				status = "copied YAML"
			}
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
