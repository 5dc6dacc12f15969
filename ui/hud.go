package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/polar/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	ZoomLevel     int
	PixelRate     float32
	Particles     int
	Primes        int
	NonPrimes     int
	DrawNonPrimes bool
	FPS           int32
}

// Rows returns the label/value pairs shown in the HUD panel.
func (d HUDData) Rows() [][2]string {
	filter := "all"
	if !d.DrawNonPrimes {
		filter = "primes only"
	}
	return [][2]string{
		{"Zoom", fmt.Sprintf("%d (%.4f px/unit)", d.ZoomLevel, d.PixelRate)},
		{"Particles", fmt.Sprintf("%d", d.Particles)},
		{"Visible", fmt.Sprintf("%d primes, %d others", d.Primes, d.NonPrimes)},
		{"Showing", filter},
		{"FPS", fmt.Sprintf("%d", d.FPS)},
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), width: 260}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rows := data.Rows()
	r.DrawPanel(5, 5, h.width, r.panelHeight(len(rows)))

	x := 5 + r.Theme.Padding
	y := r.DrawSectionHeader(x, 5+r.Theme.Padding, data.Title)
	for _, row := range rows {
		y = r.DrawLabelValue(x, y, row[0], row[1])
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: 240}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// PerfLine is one phase row of the perf panel.
type PerfLine struct {
	Phase string
	Avg   time.Duration
	Pct   float64
}

// PerfLines returns phases sorted by share of frame time, largest first.
func PerfLines(stats telemetry.PerfStats) []PerfLine {
	lines := make([]PerfLine, 0, len(stats.PhaseAvg))
	for phase, avg := range stats.PhaseAvg {
		lines = append(lines, PerfLine{Phase: phase, Avg: avg, Pct: stats.PhasePct[phase]})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Pct != lines[j].Pct {
			return lines[i].Pct > lines[j].Pct
		}
		return lines[i].Phase < lines[j].Phase
	})
	return lines
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	lines := PerfLines(stats)
	r.DrawPanel(p.x, p.y, p.width, r.panelHeight(len(lines)+2))

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Frame Performance")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%s (max %s)",
		stats.AvgFrameDuration.Round(time.Microsecond), stats.MaxFrameDuration.Round(time.Microsecond)))
	y = r.DrawLabelValue(x, y, "Rebuilds", fmt.Sprintf("%d (avg %s)", stats.Rebuilds, stats.AvgRebuildCost.Round(time.Microsecond)))

	for _, line := range lines {
		color := r.Theme.LabelColor
		if line.Pct > 50 {
			color = r.Theme.AlertColor
		} else if line.Pct > 25 {
			color = r.Theme.WarnColor
		}
		rl.DrawText(
			fmt.Sprintf("%-8s %8s %5.1f%%", line.Phase, line.Avg.Round(time.Microsecond), line.Pct),
			x, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight
	}
}
