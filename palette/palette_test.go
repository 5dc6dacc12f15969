package palette

import (
	"image/color"
	"testing"
)

func TestIndex(t *testing.T) {
	testCases := []struct {
		class Class
		want  int
	}{
		{Background, 0},
		{NonPrime, 1},
		{Prime, 2},
		{Class(7), 0}, // unknown falls back to background
	}

	for _, tc := range testCases {
		if got := Index(tc.class); got != tc.want {
			t.Errorf("Index(%v) = %d, want %d", tc.class, got, tc.want)
		}
	}
}

func TestSourceRect(t *testing.T) {
	r := SourceRect(Prime)
	if r != (Rect{X: 2, Y: 0, W: 1, H: 1}) {
		t.Errorf("unexpected prime source rect %+v", r)
	}
	if SourceRect(Class(200)).X != 0 {
		t.Error("unknown class should select the background column")
	}
}

func TestDefaultColors(t *testing.T) {
	p := Default()

	if p.Color(Background) != (color.RGBA{A: 255}) {
		t.Errorf("expected opaque black background, got %v", p.Color(Background))
	}
	if p.Color(NonPrime) != (color.RGBA{R: 232, G: 235, B: 46, A: 255}) {
		t.Errorf("unexpected non-prime colour %v", p.Color(NonPrime))
	}
	if p.Color(Prime) != (color.RGBA{R: 92, G: 209, B: 176, A: 255}) {
		t.Errorf("unexpected prime colour %v", p.Color(Prime))
	}
}

func TestNewMatchesDefault(t *testing.T) {
	p := New([]float64{0, 0, 0}, []float64{0.91, 0.92, 0.18}, []float64{0.36, 0.82, 0.69})
	if p != Default() {
		t.Errorf("expected config triples to reproduce defaults, got %v", p)
	}

	clamped := New([]float64{-1, 2}, nil, nil)
	if clamped[Background] != (color.RGBA{R: 0, G: 255, B: 0, A: 255}) {
		t.Errorf("expected clamped channels, got %v", clamped[Background])
	}
}

func TestImage(t *testing.T) {
	p := Default()
	img := p.Image()

	b := img.Bounds()
	if b.Dx() != 3 || b.Dy() != 1 {
		t.Fatalf("expected 3x1 strip, got %dx%d", b.Dx(), b.Dy())
	}
	for _, c := range []Class{Background, NonPrime, Prime} {
		if got := img.RGBAAt(Index(c), 0); got != p.Color(c) {
			t.Errorf("column %d: got %v, want %v", Index(c), got, p.Color(c))
		}
	}
}

func TestPixelsIsCopy(t *testing.T) {
	p := Default()
	px := p.Pixels()
	if len(px) != 3 || px[Index(Prime)] != p.Color(Prime) {
		t.Fatalf("unexpected pixels %v", px)
	}
	px[0] = color.RGBA{R: 1}
	if p.Color(Background) == px[0] {
		t.Error("Pixels should not alias the palette")
	}
}
