// Package camera provides the viewport projection for the polar field.
package camera

import "math"

// Projector maps world positions onto the frame and culls those too small or
// too far out to be worth drawing. The world origin sits at the frame centre.
type Projector struct {
	// Pixels per world unit at zoom level 0
	BasePixelRate float32

	// Each zoom level divides the pixel rate by this factor
	ZoomBase float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32
}

// New creates a projector for the given frame size.
func New(basePixelRate, zoomBase, viewportW, viewportH float32) *Projector {
	return &Projector{
		BasePixelRate: basePixelRate,
		ZoomBase:      zoomBase,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
	}
}

// Resize updates viewport dimensions.
func (p *Projector) Resize(viewportW, viewportH float32) {
	p.ViewportW = viewportW
	p.ViewportH = viewportH
}

// PixelRate returns the pixels per world unit for a zoom level.
// Larger levels give smaller rates, i.e. zoomed further out.
func (p *Projector) PixelRate(zoomLevel int) float32 {
	return p.BasePixelRate / float32(math.Pow(float64(p.ZoomBase), float64(zoomLevel)))
}

// FrameBound returns the larger viewport dimension.
func (p *Projector) FrameBound() float32 {
	return max(p.ViewportW, p.ViewportH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (p *Projector) WorldToScreen(wx, wy, rate float32) (sx, sy float32) {
	sx = wx*rate + p.ViewportW/2
	sy = wy*rate + p.ViewportH/2
	return sx, sy
}

// IsVisible reports whether a point is worth drawing at this pixel rate.
// Points whose scaled extent is below one pixel are dropped, as are points
// whose half extent exceeds the frame bound.
func (p *Projector) IsVisible(wx, wy, rate float32) bool {
	extent := max(absf(wx*rate), absf(wy*rate))
	return extent >= 1.0 && extent/2.0 <= p.FrameBound()
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
