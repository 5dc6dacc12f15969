package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/config"
)

// Window owns the raylib window and satisfies view.Host.
type Window struct{}

// OpenWindow creates the window described by cfg.
func OpenWindow(cfg *config.Config) *Window {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	return &Window{}
}

// ToggleFullscreen switches between windowed and fullscreen.
func (w *Window) ToggleFullscreen() {
	rl.ToggleFullscreen()
	slog.Debug("fullscreen toggled", "fullscreen", rl.IsWindowFullscreen())
}

// Size returns the current drawable size.
func (w *Window) Size() (width, height float32) {
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

// ShouldClose reports whether the window's close button was pressed.
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Close destroys the window.
func (w *Window) Close() {
	rl.CloseWindow()
}
