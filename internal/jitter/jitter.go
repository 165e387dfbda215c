// Package jitter provides a concurrency-safe random source for the noise
// terms the scoring heuristics blend into their outputs.
package jitter

import (
	"math"
	"math/rand"
	"sync"
)

// Source wraps a seeded math/rand generator behind a mutex so concurrent
// request handlers can share one stream.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Uniform draws from [low, high).
func (s *Source) Uniform(low, high float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.rng.Float64()*(high-low)
}

// IntBetween draws an integer from [low, high).
func (s *Source) IntBetween(low, high int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.rng.Intn(high-low)
}

// Normal draws from a gaussian with the given mean and standard deviation.
func (s *Source) Normal(mean, stddev float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mean + s.rng.NormFloat64()*stddev
}

// Poisson draws from a Poisson distribution with the given mean, using
// Knuth's multiplication method.
func (s *Source) Poisson(lambda float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for p > limit {
		k++
		p *= s.rng.Float64()
	}
	return k - 1
}
