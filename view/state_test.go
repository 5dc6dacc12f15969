package view

import "testing"

type fakeHost struct {
	toggles int
}

func (h *fakeHost) ToggleFullscreen() { h.toggles++ }

func press(a Action) Event   { return Event{Action: a, Edge: Pressed} }
func release(a Action) Event { return Event{Action: a, Edge: Released} }

func TestInitial(t *testing.T) {
	s := Initial()
	if s.ZoomLevel != 0 || !s.DrawNonPrimes {
		t.Errorf("unexpected initial state %+v", s)
	}
}

func TestZoomInClampsAtZero(t *testing.T) {
	c := Controller{MaxZoomLevel: 1000}
	s := Initial()

	c.Apply(&s, press(ZoomIn), nil)
	if s.ZoomLevel != 0 {
		t.Errorf("zoom in at 0 should be a no-op, got %d", s.ZoomLevel)
	}

	s.ZoomLevel = 3
	c.Apply(&s, press(ZoomIn), nil)
	if s.ZoomLevel != 2 {
		t.Errorf("expected zoom 2, got %d", s.ZoomLevel)
	}
}

func TestZoomOutStopsOnePastMax(t *testing.T) {
	c := Controller{MaxZoomLevel: 5}
	s := Initial()

	for i := 0; i < 20; i++ {
		c.Apply(&s, press(ZoomOut), nil)
	}
	if s.ZoomLevel != 6 {
		t.Errorf("expected zoom to stop at max+1 (6), got %d", s.ZoomLevel)
	}
}

func TestZoomFiresOnKeyDownOnly(t *testing.T) {
	c := Controller{MaxZoomLevel: 10}
	s := State{ZoomLevel: 2, DrawNonPrimes: true}

	c.Apply(&s, release(ZoomOut), nil)
	c.Apply(&s, release(ZoomIn), nil)
	if s.ZoomLevel != 2 {
		t.Errorf("key release should not zoom, got %d", s.ZoomLevel)
	}
}

func TestToggleNonPrimesOnRelease(t *testing.T) {
	c := Controller{MaxZoomLevel: 10}
	s := Initial()

	c.Apply(&s, press(ToggleNonPrimes), nil)
	if !s.DrawNonPrimes {
		t.Error("key-down should not toggle")
	}
	c.Apply(&s, release(ToggleNonPrimes), nil)
	if s.DrawNonPrimes {
		t.Error("expected non-primes hidden after release")
	}
	c.Apply(&s, release(ToggleNonPrimes), nil)
	if !s.DrawNonPrimes {
		t.Error("expected non-primes shown after second release")
	}
}

// Fullscreen also zooms out one level. This coupling is kept on purpose for
// parity and is not clamped by MaxZoomLevel.
func TestFullscreenQuirkZoomsOut(t *testing.T) {
	c := Controller{MaxZoomLevel: 2, FullscreenZoomQuirk: true}
	host := &fakeHost{}
	s := State{ZoomLevel: 3, DrawNonPrimes: true}

	c.Apply(&s, release(ToggleFullscreen), host)
	if host.toggles != 1 {
		t.Errorf("expected one fullscreen toggle, got %d", host.toggles)
	}
	if s.ZoomLevel != 4 {
		t.Errorf("expected quirk to push zoom past max to 4, got %d", s.ZoomLevel)
	}

	c.Apply(&s, press(ToggleFullscreen), host)
	if host.toggles != 1 {
		t.Error("key-down should not toggle fullscreen")
	}
}

func TestFullscreenWithoutQuirk(t *testing.T) {
	c := Controller{MaxZoomLevel: 10}
	host := &fakeHost{}
	s := Initial()

	c.Apply(&s, release(ToggleFullscreen), host)
	if host.toggles != 1 || s.ZoomLevel != 0 {
		t.Errorf("expected toggle without zoom change, got toggles=%d zoom=%d", host.toggles, s.ZoomLevel)
	}
}

func TestQuit(t *testing.T) {
	c := Controller{MaxZoomLevel: 10}
	s := Initial()

	if c.Apply(&s, press(Quit), nil) {
		t.Error("quit should fire on release, not key-down")
	}
	if !c.Apply(&s, release(Quit), nil) {
		t.Error("expected quit on release")
	}
	if s != Initial() {
		t.Errorf("quit should not change state, got %+v", s)
	}
}

func TestActionString(t *testing.T) {
	if ToggleNonPrimes.String() != "toggle_non_primes" {
		t.Errorf("unexpected name %q", ToggleNonPrimes.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("unexpected name for invalid action")
	}
}
