// Package rng provides the seeded random source shared by every generation step.
//
// The algorithm is fixed so that a stored seed always replays the same dungeon:
// PCG-DXSM with 128-bit state (math/rand/v2.PCG), seeded with the user seed and a
// constant stream selector. Integer ranges are derived from single 64-bit draws
// with Lemire's multiply-shift method, rejecting the biased low range.
package rng

import (
	"math/bits"
	"math/rand/v2"
)

// stream is the second PCG seed word. Changing it changes every dungeon.
const stream = 0x4c414e5445524e21

// Rand is a deterministic random source. It is not safe for concurrent use.
type Rand struct {
	src   *rand.PCG
	draws uint64
}

// New creates a source for the given seed.
func New(seed int64) *Rand {
	return &Rand{src: rand.NewPCG(uint64(seed), stream)}
}

// Uint64 returns the next raw 64-bit value.
func (r *Rand) Uint64() uint64 {
	r.draws++
	return r.src.Uint64()
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with non-positive n")
	}
	bound := uint64(n)
	hi, lo := bits.Mul64(r.Uint64(), bound)
	if lo < bound {
		threshold := -bound % bound
		for lo < threshold {
			hi, lo = bits.Mul64(r.Uint64(), bound)
		}
	}
	return int(hi)
}

// Range returns a uniform integer in [lo, hi).
func (r *Rand) Range(lo, hi int) int {
	return lo + r.IntN(hi-lo)
}

// Bool returns the low bit of one draw.
func (r *Rand) Bool() bool {
	return r.Uint64()&1 == 1
}

// Shuffle permutes n elements with Fisher-Yates, walking from the last index down.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		swap(i, j)
	}
}

// Draws reports how many 64-bit values have been consumed.
func (r *Rand) Draws() uint64 {
	return r.draws
}
