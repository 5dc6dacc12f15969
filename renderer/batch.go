package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/batch"
)

// BatchRenderer submits a primitive batch as textured quads.
type BatchRenderer struct {
	strip *PaletteTexture
}

// NewBatchRenderer creates a renderer sampling from strip.
func NewBatchRenderer(strip *PaletteTexture) *BatchRenderer {
	return &BatchRenderer{strip: strip}
}

// Draw clears to the background colour and draws every primitive in order.
// raylib batches consecutive draws of the same texture into one submission.
func (r *BatchRenderer) Draw(primitives []batch.Primitive) {
	if !r.strip.initialized {
		r.strip.Init()
	}

	rl.ClearBackground(r.strip.Background())

	tex := r.strip.Texture()
	for i := range primitives {
		p := &primitives[i]
		srcRect := rl.Rectangle{
			X:      float32(p.Source.X),
			Y:      float32(p.Source.Y),
			Width:  float32(p.Source.W),
			Height: float32(p.Source.H),
		}
		dstRect := rl.Rectangle{X: p.X, Y: p.Y, Width: p.ScaleX, Height: p.ScaleY}
		rl.DrawTexturePro(tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	}
}
