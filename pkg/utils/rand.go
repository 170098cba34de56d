package utils

import (
	"math/rand/v2"
	"strings"
)

// RandSource is a seedable random number generator. It is not safe for
// concurrent use; every simulation trial owns its own source.
type RandSource struct {
	pcg *rand.PCG
	rng *rand.Rand
}

// NewRandSource creates a new random source with the given seed. Every
// seed, zero included, yields a reproducible stream.
func NewRandSource(seed int64) *RandSource {
	pcg := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return &RandSource{pcg: pcg, rng: rand.New(pcg)}
}

// Clone returns an independent source positioned at the same point of the
// stream. Draws from the clone never advance the original.
func (r *RandSource) Clone() *RandSource {
	pcg := *r.pcg
	return &RandSource{pcg: &pcg, rng: rand.New(&pcg)}
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandSource) Intn(n int) int {
	return r.rng.IntN(n)
}

// ExpFloat64 returns an exponentially distributed random number with rate lambda
func (r *RandSource) ExpFloat64(lambda float64) float64 {
	return r.rng.ExpFloat64() / lambda
}

// BernoulliBool returns true with probability p, false otherwise
func (r *RandSource) BernoulliBool(p float64) bool {
	return r.rng.Float64() < p
}

// UniformFloat64 returns a uniformly distributed random number in [min, max)
func (r *RandSource) UniformFloat64(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// Digits returns n random decimal digits, used for generated names.
func (r *RandSource) Digits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + r.Intn(10)))
	}
	return b.String()
}
