package waterquality

import (
	"hash/fnv"
	"math/rand/v2"
)

// RandomSource is the randomness used by baseline derivation, synthesis and
// event injection. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a seeded PCG source.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda942042e4dd58b5))
}

// StationRandom returns a source derived from seed and the station id, so
// each station draws an independent but reproducible stream regardless of
// the order stations are processed in.
func StationRandom(seed uint64, stationID string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stationID))
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}

// uniform draws from [lo, hi).
func uniform(rng RandomSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// uniformInt draws an integer from [lo, hi].
func uniformInt(rng RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
