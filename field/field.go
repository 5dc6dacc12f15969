// Package field generates the polar-mapped particle set.
package field

import (
	"math"
	"sync/atomic"

	"github.com/pthm-cable/polar/parallel"
	"github.com/pthm-cable/polar/primes"
)

// Particle is one source integer placed at (n cos n, n sin n).
type Particle struct {
	X, Y  float32
	Prime bool
}

// Field holds one particle per source integer; index i is integer i+1.
// It is read-only once generated.
type Field []Particle

// Progress counts generated particles for a loading screen.
// The zero value is ready to use.
type Progress struct {
	done  atomic.Int64
	total atomic.Int64
}

// Fraction returns completion in [0, 1].
func (p *Progress) Fraction() float32 {
	total := p.total.Load()
	if total <= 0 {
		return 0
	}
	return float32(p.done.Load()) / float32(total)
}

// Done returns the number of particles generated so far.
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Position returns the polar-mapped position of source integer n (angle in radians).
func Position(n uint64) (x, y float32) {
	r := float64(n)
	sin, cos := math.Sincos(r)
	return float32(r * cos), float32(r * sin)
}

// Generate builds particles for every integer in [1, maxNumber).
// The oracle must cover maxNumber-1. progress may be nil.
func Generate(maxNumber uint64, oracle *primes.Oracle, pool *parallel.Pool, progress *Progress) Field {
	if maxNumber < 2 {
		return Field{}
	}

	n := int(maxNumber - 1)
	f := make(Field, n)
	if progress != nil {
		progress.done.Store(0)
		progress.total.Store(int64(n))
	}

	pool.Run(n, func(_, start, end int) {
		for i := start; i < end; i++ {
			num := uint64(i + 1)
			x, y := Position(num)
			f[i] = Particle{X: x, Y: y, Prime: oracle.IsPrime(num)}
		}
		if progress != nil {
			progress.done.Add(int64(end - start))
		}
	})

	return f
}

// Primes returns the number of prime-tagged particles.
func (f Field) Primes() int {
	count := 0
	for i := range f {
		if f[i].Prime {
			count++
		}
	}
	return count
}
