package generate

import "math/rand/v2"

// Source supplies the randomness an algorithm consumes.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform integer in [0, n). n must be positive.
	IntN(n int) int
}

// NewSource returns a deterministic PCG-backed generator for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// sample picks one element of vs uniformly. It reports false for an empty slice.
func sample[T any](rng Source, vs []T) (T, bool) {
	if len(vs) == 0 {
		var zero T
		return zero, false
	}
	return vs[rng.IntN(len(vs))], true
}

// coin returns true with probability 1/2.
func coin(rng Source) bool {
	return rng.IntN(2) == 0
}
