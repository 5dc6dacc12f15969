// Package palette maps particle classes onto columns of a small colour strip.
package palette

import (
	"image"
	"image/color"
)

// Class selects a colour table entry.
type Class uint8

const (
	Background Class = iota
	NonPrime
	Prime

	numClasses
)

func (c Class) String() string {
	switch c {
	case Background:
		return "background"
	case NonPrime:
		return "non_prime"
	case Prime:
		return "prime"
	}
	return "unknown"
}

// Rect is a source region inside the colour strip, in pixels.
type Rect struct {
	X, Y, W, H int
}

// Palette is the colour strip, one pixel per class.
type Palette [numClasses]color.RGBA

// Default returns black, yellow and blue.
func Default() Palette {
	return Palette{
		Background: FromUnit(0, 0, 0),
		NonPrime:   FromUnit(0.91, 0.92, 0.18),
		Prime:      FromUnit(0.36, 0.82, 0.69),
	}
}

// New builds a palette from [0, 1] RGB triples. Short triples leave the
// remaining channels at zero.
func New(background, nonPrime, prime []float64) Palette {
	return Palette{
		Background: fromSlice(background),
		NonPrime:   fromSlice(nonPrime),
		Prime:      fromSlice(prime),
	}
}

// FromUnit converts [0, 1] channel values to an opaque colour.
func FromUnit(r, g, b float64) color.RGBA {
	return color.RGBA{R: unitByte(r), G: unitByte(g), B: unitByte(b), A: 255}
}

func fromSlice(rgb []float64) color.RGBA {
	var c [3]float64
	copy(c[:], rgb)
	return FromUnit(c[0], c[1], c[2])
}

func unitByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Index returns the strip column for a class. Unknown classes fall back to
// the background column.
func Index(c Class) int {
	if c >= numClasses {
		return int(Background)
	}
	return int(c)
}

// SourceRect returns the 1x1 region holding a class colour.
func SourceRect(c Class) Rect {
	return Rect{X: Index(c), Y: 0, W: 1, H: 1}
}

// Color returns the colour drawn for a class.
func (p Palette) Color(c Class) color.RGBA {
	return p[Index(c)]
}

// Image builds the colour strip handed to rendering hosts.
func (p Palette) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, len(p), 1))
	for i, c := range p {
		img.SetRGBA(i, 0, c)
	}
	return img
}

// Pixels returns the strip as a row of colours in column order.
func (p Palette) Pixels() []color.RGBA {
	return append([]color.RGBA(nil), p[:]...)
}
