// Package batch builds the per-frame list of draw primitives from the particle field.
package batch

import (
	"github.com/pthm-cable/polar/camera"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/palette"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/view"
)

// Primitive is one sprite: a colour strip sample drawn at a screen position.
type Primitive struct {
	X, Y   float32
	Class  palette.Class
	Source palette.Rect

	ScaleX, ScaleY float32
}

// Builder runs the cull + map pass over the field on a worker pool.
// Per-chunk scratch buffers are reused between builds.
type Builder struct {
	pool  *parallel.Pool
	scale float32

	scratch [][]Primitive
}

// NewBuilder creates a builder drawing each particle at spriteScale times a source pixel.
func NewBuilder(pool *parallel.Pool, spriteScale float32) *Builder {
	return &Builder{pool: pool, scale: spriteScale}
}

// Build clears dst and fills it with the primitives visible under s.
// Output follows field order regardless of how work was split.
func (b *Builder) Build(dst []Primitive, f field.Field, s view.State, p *camera.Projector) []Primitive {
	dst = dst[:0]
	n := len(f)
	if n == 0 {
		return dst
	}

	chunks := b.pool.Chunks(n)
	for len(b.scratch) < chunks {
		b.scratch = append(b.scratch, nil)
	}

	rate := p.PixelRate(s.ZoomLevel)
	drawNonPrimes := s.DrawNonPrimes

	b.pool.Run(n, func(chunk, start, end int) {
		out := b.scratch[chunk][:0]
		for i := start; i < end; i++ {
			particle := &f[i]
			if !particle.Prime && !drawNonPrimes {
				continue
			}
			if !p.IsVisible(particle.X, particle.Y, rate) {
				continue
			}

			class := palette.NonPrime
			if particle.Prime {
				class = palette.Prime
			}
			sx, sy := p.WorldToScreen(particle.X, particle.Y, rate)
			out = append(out, Primitive{
				X:      sx,
				Y:      sy,
				Class:  class,
				Source: palette.SourceRect(class),
				ScaleX: b.scale,
				ScaleY: b.scale,
			})
		}
		b.scratch[chunk] = out
	})

	// Join in chunk order
	total := 0
	for _, out := range b.scratch[:chunks] {
		total += len(out)
	}
	if cap(dst) < total {
		dst = make([]Primitive, 0, total)
	}
	for _, out := range b.scratch[:chunks] {
		dst = append(dst, out...)
	}
	return dst
}

// Counts returns how many primitives of each colour class a batch holds.
func Counts(batch []Primitive) (primes, nonPrimes int) {
	for i := range batch {
		if batch[i].Class == palette.Prime {
			primes++
		} else {
			nonPrimes++
		}
	}
	return primes, nonPrimes
}
