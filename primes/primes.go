// Package primes builds a primality lookup table over a fixed integer range.
package primes

import "math/bits"

// Oracle answers primality queries for integers in [1, Max()].
// It is read-only after Build and safe for concurrent use.
type Oracle struct {
	max   uint64
	count int

	// composite has one bit per odd number: bit i covers 2i+1.
	composite []uint64
}

// Build sieves every integer up to and including max.
// This blocks until the table is complete.
func Build(max uint64) *Oracle {
	o := &Oracle{max: max}
	if max < 2 {
		return o
	}

	odds := (max + 1) / 2
	o.composite = make([]uint64, (odds+63)/64)
	o.set(0) // 1 is not prime

	for i := uint64(1); ; i++ {
		p := 2*i + 1
		if p*p > max {
			break
		}
		if o.get(i) {
			continue
		}
		// Cross off odd multiples starting at p*p
		for m := p * p; m <= max; m += 2 * p {
			o.set(m / 2)
		}
	}

	o.count = 1 // 2
	for i, w := range o.composite {
		live := ^w
		// Mask bits past the last odd number
		if hi := uint64(i+1) * 64; hi > odds {
			live &= (1 << (64 - (hi - odds))) - 1
		}
		o.count += bits.OnesCount64(live)
	}

	return o
}

// IsPrime reports whether k is prime. k must lie in [1, Max()];
// values outside the table report false.
func (o *Oracle) IsPrime(k uint64) bool {
	if k < 2 || k > o.max {
		return false
	}
	if k == 2 {
		return true
	}
	if k%2 == 0 {
		return false
	}
	return !o.get(k / 2)
}

// Max returns the inclusive upper bound of the table.
func (o *Oracle) Max() uint64 {
	return o.max
}

// Count returns the number of primes in [1, Max()].
func (o *Oracle) Count() int {
	return o.count
}

func (o *Oracle) get(i uint64) bool {
	return o.composite[i/64]&(1<<(i%64)) != 0
}

func (o *Oracle) set(i uint64) {
	o.composite[i/64] |= 1 << (i % 64)
}
