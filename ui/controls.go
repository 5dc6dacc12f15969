package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/view"
)

// ControlButton is one on-screen button and the action it fires.
type ControlButton struct {
	Label  string
	Action view.Action
}

// DefaultButtons mirrors the keyboard bindings.
func DefaultButtons() []ControlButton {
	return []ControlButton{
		{Label: "Zoom In", Action: view.ZoomIn},
		{Label: "Zoom Out", Action: view.ZoomOut},
		{Label: "Non-primes", Action: view.ToggleNonPrimes},
		{Label: "Fullscreen", Action: view.ToggleFullscreen},
		{Label: "Quit", Action: view.Quit},
	}
}

// ButtonEvents returns the events a click on a button produces. Zoom buttons
// act like a key-down; the rest act like a key-release, matching the keyboard.
func ButtonEvents(a view.Action) []view.Event {
	switch a {
	case view.ZoomIn, view.ZoomOut:
		return []view.Event{{Action: a, Edge: view.Pressed}}
	}
	return []view.Event{{Action: a, Edge: view.Released}}
}

// ControlsPanel renders the right-side button column.
type ControlsPanel struct {
	renderer *Renderer
	buttons  []ControlButton
	visible  bool
	events   []view.Event
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(buttons []ControlButton) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), buttons: buttons, visible: true}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the buttons against the right edge of the screen and returns
// the events fired by clicks this frame. The slice is reused between calls.
func (c *ControlsPanel) Draw(screenWidth int32) []view.Event {
	c.events = c.events[:0]
	if !c.visible {
		return c.events
	}

	t := c.renderer.Theme
	x := float32(screenWidth) - t.ButtonWidth - float32(t.Padding)
	y := float32(t.Padding)
	for _, b := range c.buttons {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth, Height: t.ButtonHeight}, b.Label) {
			c.events = append(c.events, ButtonEvents(b.Action)...)
		}
		y += t.ButtonHeight + 6
	}
	return c.events
}
