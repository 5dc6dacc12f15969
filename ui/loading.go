package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// LoadingData describes load progress.
type LoadingData struct {
	Stage    string
	Fraction float32
	Done     int64
}

// LoadingScreen shows the load stage and a progress bar.
type LoadingScreen struct {
	renderer *Renderer
}

// NewLoadingScreen creates a loading screen.
func NewLoadingScreen() *LoadingScreen {
	return &LoadingScreen{renderer: NewRenderer()}
}

// Draw renders the loading screen centred in the window.
func (l *LoadingScreen) Draw(screenWidth, screenHeight int32, data LoadingData) {
	r := l.renderer
	rl.ClearBackground(rl.Black)

	width := float32(screenWidth) / 2
	x := (float32(screenWidth) - width) / 2
	y := float32(screenHeight) / 2

	rl.DrawText(data.Stage, int32(x), int32(y)-30, 20, r.Theme.ValueColor)
	gui.ProgressBar(
		rl.Rectangle{X: x, Y: y, Width: width, Height: 20},
		"", fmt.Sprintf("%d", data.Done),
		data.Fraction, 0, 1,
	)
}
