package main

import (
	"testing"

	"github.com/pthm-cable/polar/config"
)

func TestParamsRoundtripThroughConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := paramsFromConfig(cfg)
	if p.BasePixelRate != 10 || p.ZoomBase != float32(1.02) {
		t.Errorf("unexpected params from defaults: %+v", p)
	}

	p.BasePixelRate = 12.345
	p.Prime[0] = 0.5
	p.apply(cfg)
	if cfg.View.BasePixelRate != 12.35 {
		t.Errorf("expected rounded base pixel rate 12.35, got %v", cfg.View.BasePixelRate)
	}
	if cfg.Palette.Prime[0] != 0.5 {
		t.Errorf("expected prime red 0.5, got %v", cfg.Palette.Prime[0])
	}
}

func TestPaletteFollowsParams(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := paramsFromConfig(cfg)
	p.Prime = [3]float32{1, 0, 0}
	pal := p.palette(cfg.Palette.Background)
	got := pal[2]
	if got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("expected pure red prime colour, got %v", got)
	}
}
