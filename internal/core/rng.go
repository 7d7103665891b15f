package core

import "math/rand/v2"

// Source is the randomness capability consumed by the simulations. Both
// *rand.Rand and *RNG satisfy it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

type globalSource struct{}

func (globalSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide generator. It is safe for concurrent
// use and is seeded randomly at startup.
func DefaultSource() Source { return globalSource{} }
