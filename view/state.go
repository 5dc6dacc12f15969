// Package view holds the zoom/filter state and its input-driven transitions.
package view

// State is the per-frame view configuration. It is compared by value to
// decide whether the draw batch needs rebuilding.
type State struct {
	ZoomLevel     int
	DrawNonPrimes bool
}

// Initial returns the startup state: fully zoomed in, non-primes visible.
func Initial() State {
	return State{ZoomLevel: 0, DrawNonPrimes: true}
}

// Action is a logical input, independent of the physical key bound to it.
type Action uint8

const (
	ZoomIn Action = iota
	ZoomOut
	ToggleFullscreen
	ToggleNonPrimes
	Quit
)

func (a Action) String() string {
	switch a {
	case ZoomIn:
		return "zoom_in"
	case ZoomOut:
		return "zoom_out"
	case ToggleFullscreen:
		return "toggle_fullscreen"
	case ToggleNonPrimes:
		return "toggle_non_primes"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Edge distinguishes key-down from key-release.
type Edge uint8

const (
	Pressed Edge = iota
	Released
)

// Event is one decoded input edge.
type Event struct {
	Action Action
	Edge   Edge
}

// Host is the part of the rendering host the transitions call into.
type Host interface {
	ToggleFullscreen()
}

// Controller applies input events to a State.
type Controller struct {
	MaxZoomLevel int

	// FullscreenZoomQuirk keeps the historical behaviour where toggling
	// fullscreen also zooms out one level.
	FullscreenZoomQuirk bool
}

// Apply performs the transition for ev and reports whether the user asked to quit.
// Zoom actions fire on key-down; toggles and quit fire on key-release.
func (c Controller) Apply(s *State, ev Event, host Host) (quit bool) {
	switch {
	case ev.Action == ZoomIn && ev.Edge == Pressed:
		if s.ZoomLevel > 0 {
			s.ZoomLevel--
		}
	case ev.Action == ZoomOut && ev.Edge == Pressed:
		// Allows one step past MaxZoomLevel, never more
		if s.ZoomLevel <= c.MaxZoomLevel {
			s.ZoomLevel++
		}
	case ev.Action == ToggleFullscreen && ev.Edge == Released:
		if host != nil {
			host.ToggleFullscreen()
		}
		if c.FullscreenZoomQuirk {
			s.ZoomLevel++
		}
	case ev.Action == ToggleNonPrimes && ev.Edge == Released:
		s.DrawNonPrimes = !s.DrawNonPrimes
	case ev.Action == Quit && ev.Edge == Released:
		return true
	}
	return false
}
