package storage

import "math/rand"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacity bounds each kind's buffer. When a buffer is full a
// random existing entry is replaced, keeping the retained sample
// unbiased. Zero or negative means unbounded.
func WithCapacity(n int) Option {
	return func(s *MemStore) {
		s.capacity = n
	}
}

// WithRand fixes the random source used for shuffled inserts and
// capacity eviction. Used by tests that need deterministic placement.
func WithRand(rng *rand.Rand) Option {
	return func(s *MemStore) {
		s.rng = rng
	}
}
