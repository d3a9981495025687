// Package dimension provides the nonce source used to keep structurally
// identical voice call session records distinct.
//
// The downstream collector deduplicates records by field-tuple equality,
// so two identical sessions in one pull batch would silently collapse
// into one. Appending a random nonce field defeats that. The nonce
// carries no meaning and must never feed a correctness decision; a
// non-cryptographic source is sufficient.
package dimension

import (
	"math/rand"
	"sync"
	"time"
)

// Disambiguator is a process-wide pseudorandom nonce source, safe for
// concurrent use.
type Disambiguator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option applies a configuration option to the Disambiguator.
type Option func(*Disambiguator)

// WithSeed fixes the random seed. Used by tests that need a
// reproducible nonce sequence.
func WithSeed(seed int64) Option {
	return func(d *Disambiguator) {
		d.rng = rand.New(rand.NewSource(seed))
	}
}

// NewDisambiguator creates a disambiguator seeded from the clock.
func NewDisambiguator(opts ...Option) *Disambiguator {
	d := &Disambiguator{}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return d
}

// Nonce returns the next random dimension value.
func (d *Disambiguator) Nonce() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Int31()
}
