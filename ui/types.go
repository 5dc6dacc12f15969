// Package ui draws the heads-up display, control buttons and loading screen.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	WarnColor      rl.Color
	AlertColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
	ButtonWidth    float32
	ButtonHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		WarnColor:      rl.Orange,
		AlertColor:     rl.Red,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		FontSize:       12,
		HeaderFontSize: 14,
		ButtonWidth:    110,
		ButtonHeight:   26,
	}
}
