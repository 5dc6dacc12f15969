package batch

import (
	"testing"

	"github.com/pthm-cable/polar/camera"
	"github.com/pthm-cable/polar/field"
	"github.com/pthm-cable/polar/palette"
	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/primes"
	"github.com/pthm-cable/polar/view"
)

func newField(maxNumber uint64, pool *parallel.Pool) field.Field {
	return field.Generate(maxNumber, primes.Build(maxNumber), pool, nil)
}

// classOf finds the primitive drawn for source integer n, if any.
func classOf(batch []Primitive, p *camera.Projector, rate float32, n uint64) (palette.Class, bool) {
	x, y := field.Position(n)
	sx, sy := p.WorldToScreen(x, y, rate)
	for _, prim := range batch {
		if prim.X == sx && prim.Y == sy {
			return prim.Class, true
		}
	}
	return 0, false
}

func TestEndToEndSmallField(t *testing.T) {
	pool := parallel.NewPool(4, 1)
	defer pool.Stop()

	f := newField(10, pool)
	p := camera.New(10, 1.02, 100, 100)
	b := NewBuilder(pool, 2)

	batch := b.Build(nil, f, view.Initial(), p)
	if len(batch) != 9 {
		t.Fatalf("expected all 9 particles visible, got %d", len(batch))
	}

	rate := p.PixelRate(0)
	for n := uint64(1); n < 10; n++ {
		class, ok := classOf(batch, p, rate, n)
		if !ok {
			t.Errorf("n=%d missing from batch", n)
			continue
		}
		want := palette.NonPrime
		switch n {
		case 2, 3, 5, 7:
			want = palette.Prime
		}
		if class != want {
			t.Errorf("n=%d: class %v, want %v", n, class, want)
		}
	}

	for _, prim := range batch {
		if prim.ScaleX != 2 || prim.ScaleY != 2 {
			t.Errorf("expected 2x scale, got (%f, %f)", prim.ScaleX, prim.ScaleY)
		}
		if prim.Source != palette.SourceRect(prim.Class) {
			t.Errorf("source rect %+v does not match class %v", prim.Source, prim.Class)
		}
	}
}

func TestToggleNonPrimes(t *testing.T) {
	pool := parallel.NewPool(3, 1)
	defer pool.Stop()

	f := newField(20, pool)
	p := camera.New(10, 1.02, 1000, 1000)
	b := NewBuilder(pool, 2)

	all := b.Build(nil, f, view.State{DrawNonPrimes: true}, p)
	allPrimes, allNon := Counts(all)
	if allPrimes != 8 {
		t.Errorf("expected 8 primes below 20, got %d", allPrimes)
	}
	if allNon != 11 {
		t.Errorf("expected 11 non-primes below 20, got %d", allNon)
	}

	onlyPrimes := b.Build(nil, f, view.State{DrawNonPrimes: false}, p)
	gotPrimes, gotNon := Counts(onlyPrimes)
	if gotNon != 0 {
		t.Errorf("expected no non-prime primitives, got %d", gotNon)
	}
	if gotPrimes != allPrimes {
		t.Errorf("expected all %d primes retained, got %d", allPrimes, gotPrimes)
	}
}

func TestCullingDropsTinyAndDistant(t *testing.T) {
	pool := parallel.NewPool(2, 1)
	defer pool.Stop()

	f := field.Field{
		{X: 0.05, Y: 0.05, Prime: true}, // extent 0.5 at rate 10
		{X: 0.1, Y: 0, Prime: true},     // extent 1
		{X: 0, Y: -20, Prime: false},    // extent 200, half 100
		{X: 25, Y: 0, Prime: true},      // extent 250, half 125 > 100
	}
	p := camera.New(10, 1.02, 100, 60)
	b := NewBuilder(pool, 2)

	batch := b.Build(nil, f, view.Initial(), p)
	if len(batch) != 2 {
		t.Fatalf("expected 2 visible primitives, got %d: %+v", len(batch), batch)
	}
	if batch[0].Class != palette.Prime || batch[1].Class != palette.NonPrime {
		t.Errorf("unexpected classes %v, %v", batch[0].Class, batch[1].Class)
	}
	if batch[1].X != 50 || batch[1].Y != -170 {
		t.Errorf("expected (50, -170), got (%f, %f)", batch[1].X, batch[1].Y)
	}
}

func TestParallelOrderMatchesSerial(t *testing.T) {
	serial := parallel.NewPool(1, 1)
	wide := parallel.NewPool(6, 1)
	defer serial.Stop()
	defer wide.Stop()

	f := newField(5000, serial)
	p := camera.New(10, 1.02, 1280, 800)
	s := view.State{ZoomLevel: 120, DrawNonPrimes: true}

	a := NewBuilder(serial, 2).Build(nil, f, s, p)
	b := NewBuilder(wide, 2).Build(nil, f, s, p)

	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildReusesDestination(t *testing.T) {
	pool := parallel.NewPool(2, 1)
	defer pool.Stop()

	f := newField(200, pool)
	p := camera.New(10, 1.02, 4000, 4000)
	b := NewBuilder(pool, 2)

	first := b.Build(nil, f, view.Initial(), p)
	n := len(first)
	second := b.Build(first, f, view.State{DrawNonPrimes: false}, p)

	if &second[0] != &first[0] {
		t.Error("expected destination buffer to be reused")
	}
	if len(second) >= n {
		t.Errorf("expected fewer primitives without non-primes, got %d of %d", len(second), n)
	}
}

func TestEmptyField(t *testing.T) {
	pool := parallel.NewPool(2, 1)
	defer pool.Stop()

	b := NewBuilder(pool, 2)
	batch := b.Build(make([]Primitive, 5), nil, view.Initial(), camera.New(10, 1.02, 100, 100))
	if len(batch) != 0 {
		t.Errorf("expected empty batch, got %d", len(batch))
	}
}
