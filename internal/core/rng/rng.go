// Package rng provides the explicit random source handed to every component
// that samples spreads, intervals or spawn positions.
package rng

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Source samples uniform floats. Range returns a value in [min, max);
// min == max returns min and swapped bounds are accepted.
type Source interface {
	Float64() float64
	Range(min, max float64) float64
}

type PCG struct {
	r *rand.Rand
}

// New seeds a PCG generator from a numeric seed.
func New(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// FromString seeds a generator from a human readable seed such as "nebula-7".
// An empty seed picks a random one.
func FromString(seed string) *PCG {
	if seed == "" {
		return New(rand.Uint64())
	}
	return New(xxhash.Sum64String(seed))
}

func (p *PCG) Float64() float64 {
	return p.r.Float64()
}

func (p *PCG) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + p.r.Float64()*(max-min)
}
