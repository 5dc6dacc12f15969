package game

import (
	"testing"

	"github.com/pthm-cable/polar/view"
)

func TestDrain_SeveralUpdatesOneFrame(t *testing.T) {
	ctx, _ := newTestContext(t, 100)
	host := &fakeHost{}
	var q EventQueue

	// Three input polls land before a single draw
	q.Push(view.Event{Action: view.ZoomOut, Edge: view.Pressed})
	q.Push(view.Event{Action: view.ZoomOut, Edge: view.Pressed})
	q.Push(view.Event{Action: view.ToggleNonPrimes, Edge: view.Released})

	ctx.BeginFrame()
	if quit := ctx.Drain(&q, host); quit {
		t.Error("unexpected quit")
	}
	ctx.Frame(1280, 800)
	ctx.EndFrame()

	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
	if ctx.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", ctx.Frames())
	}
	s := ctx.State()
	if s.ZoomLevel != 2 || s.DrawNonPrimes {
		t.Errorf("expected zoom 2 with non-primes hidden, got %+v", s)
	}

	stats := ctx.Stats()
	if stats.Rebuilds != 1 {
		t.Errorf("expected 1 rebuild, got %d", stats.Rebuilds)
	}
}

func TestDrain_ReportsQuit(t *testing.T) {
	ctx, _ := newTestContext(t, 10)
	var q EventQueue

	q.Push(view.Event{Action: view.Quit, Edge: view.Pressed})
	if ctx.Drain(&q, nil) {
		t.Error("quit should not fire on press")
	}

	q.Push(view.Event{Action: view.Quit, Edge: view.Released})
	q.Push(view.Event{Action: view.ZoomOut, Edge: view.Pressed})
	if !ctx.Drain(&q, nil) {
		t.Error("expected quit on release")
	}
	// Events after the quit still apply
	if ctx.State().ZoomLevel != 1 {
		t.Errorf("expected zoom 1, got %d", ctx.State().ZoomLevel)
	}
}
