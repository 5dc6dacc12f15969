package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/view"
)

// Binding maps a physical key to a logical action.
type Binding struct {
	Key    int32
	Action view.Action
}

// DefaultBindings returns the keyboard layout: W/S zoom, F fullscreen,
// D toggles non-primes, Escape quits.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: rl.KeyW, Action: view.ZoomIn},
		{Key: rl.KeyS, Action: view.ZoomOut},
		{Key: rl.KeyF, Action: view.ToggleFullscreen},
		{Key: rl.KeyD, Action: view.ToggleNonPrimes},
		{Key: rl.KeyEscape, Action: view.Quit},
	}
}

// Keyboard polls raylib for key edges on the bound keys.
type Keyboard struct {
	bindings []Binding
	events   []view.Event
}

// NewKeyboard creates a keyboard source. Escape is removed as raylib's
// exit key so quitting goes through the view controller.
func NewKeyboard(bindings []Binding) *Keyboard {
	rl.SetExitKey(0)
	return &Keyboard{bindings: bindings}
}

// Poll returns this frame's key edges. The slice is reused between calls.
func (k *Keyboard) Poll() []view.Event {
	k.events = k.events[:0]
	for _, b := range k.bindings {
		if rl.IsKeyPressed(b.Key) {
			k.events = append(k.events, view.Event{Action: b.Action, Edge: view.Pressed})
		}
		if rl.IsKeyReleased(b.Key) {
			k.events = append(k.events, view.Event{Action: b.Action, Edge: view.Released})
		}
	}
	return k.events
}
