// Package renderer draws the particle batch and collects input with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/palette"
)

// PaletteTexture is the 3x1 colour strip every particle samples from.
type PaletteTexture struct {
	palette     palette.Palette
	texture     rl.Texture2D
	initialized bool
}

// NewPaletteTexture creates a texture for p. Call Init once the window exists.
func NewPaletteTexture(p palette.Palette) *PaletteTexture {
	return &PaletteTexture{palette: p}
}

// Init uploads the strip to the GPU (must be called after the raylib window is created).
func (t *PaletteTexture) Init() {
	if t.initialized {
		return
	}

	strip := t.palette.Image()
	bounds := strip.Bounds()
	img := rl.GenImageColor(bounds.Dx(), bounds.Dy(), rl.Black)
	t.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	// Nearest sampling keeps each 1x1 sample a solid colour when scaled
	rl.SetTextureFilter(t.texture, rl.FilterPoint)
	rl.UpdateTexture(t.texture, t.palette.Pixels())

	t.initialized = true
}

// Texture returns the uploaded strip.
func (t *PaletteTexture) Texture() rl.Texture2D {
	return t.texture
}

// Background returns the clear colour.
func (t *PaletteTexture) Background() rl.Color {
	return t.palette.Color(palette.Background)
}

// Unload frees GPU resources.
func (t *PaletteTexture) Unload() {
	if t.initialized {
		rl.UnloadTexture(t.texture)
		t.initialized = false
	}
}
