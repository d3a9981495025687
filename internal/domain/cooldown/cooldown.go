// Package cooldown implements the per-kind pull rate limiter.
//
// The gate permits at most one successful consumption per kind within a
// configured interval. State lives for the process lifetime; there is no
// teardown. The host is expected to serialize same-kind pulls, but the
// gate's check-and-update is atomic regardless.
package cooldown

import (
	"sync"
	"time"

	"github.com/okian/atompull/internal/domain/atom"
)

// Gate tracks the last successful pull per atom kind.
type Gate struct {
	mu       sync.Mutex
	lastPull map[atom.Kind]time.Time
}

// NewGate creates an empty gate. A kind with no recorded pull is treated
// as having its cooldown satisfied.
func NewGate() *Gate {
	return &Gate{lastPull: make(map[atom.Kind]time.Time)}
}

// TryConsume reports whether a pull of kind is allowed at now given the
// minimum interval, and records now as the last pull if so. On rejection
// the recorded timestamp is left unchanged.
func (g *Gate) TryConsume(kind atom.Kind, minInterval time.Duration, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.lastPull[kind]; ok && now.Sub(last) < minInterval {
		return false
	}
	g.lastPull[kind] = now
	return true
}

// LastPull returns the recorded timestamp for kind, if any.
func (g *Gate) LastPull(kind atom.Kind) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.lastPull[kind]
	return t, ok
}
