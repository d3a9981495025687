package storage

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/model"
	"github.com/okian/atompull/pkg/metrics"
)

// defaultCapacity bounds each kind's buffer between pulls. A day of
// typical traffic fits well under this.
const defaultCapacity = 50000

// MemStore implements Store with in-memory buffers guarded by one mutex.
type MemStore struct {
	mu       sync.Mutex
	capacity int
	rng      *rand.Rand

	ratUsages    []model.VoiceCallRatUsage
	callSessions []model.VoiceCallSession
	incomingSms  []model.IncomingSms
	outgoingSms  []model.OutgoingSms
	dataSessions []model.DataCallSession
}

// NewMemStore creates a store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Append implements Appender. Per-event kinds are placed at a random
// index so consume order does not mirror arrival order; RAT usage
// entries append in order since they fold into keyed buckets anyway.
func (s *MemStore) Append(ctx context.Context, e model.RawEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Kind {
	case atom.KindVoiceCallRatUsage:
		s.ratUsages = appendCapped(s.ratUsages, *e.VoiceCallRatUsage, s.capacity, s.rng, false)
	case atom.KindVoiceCallSession:
		s.callSessions = appendCapped(s.callSessions, *e.VoiceCallSession, s.capacity, s.rng, true)
	case atom.KindIncomingSms:
		s.incomingSms = appendCapped(s.incomingSms, *e.IncomingSms, s.capacity, s.rng, true)
	case atom.KindOutgoingSms:
		s.outgoingSms = appendCapped(s.outgoingSms, *e.OutgoingSms, s.capacity, s.rng, true)
	case atom.KindDataCallSession:
		s.dataSessions = appendCapped(s.dataSessions, *e.DataCallSession, s.capacity, s.rng, true)
	default:
		return ErrUnsupportedKind
	}
	metrics.UpdateStoreRecords(e.Kind.String(), s.countLocked(e.Kind))
	return nil
}

// appendCapped inserts v, replacing a random victim when the buffer is
// at capacity. With shuffle set, v lands at a random index instead of
// the end.
func appendCapped[T any](buf []T, v T, capacity int, rng *rand.Rand, shuffle bool) []T {
	if capacity > 0 && len(buf) >= capacity {
		buf[rng.Intn(len(buf))] = v
		return buf
	}
	if shuffle && len(buf) > 0 {
		i := rng.Intn(len(buf) + 1)
		if i < len(buf) {
			buf = append(buf, buf[i])
			buf[i] = v
			return buf
		}
	}
	return append(buf, v)
}

// VoiceCallRatUsages implements Store.
func (s *MemStore) VoiceCallRatUsages(ctx context.Context) []model.VoiceCallRatUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.ratUsages
	s.ratUsages = nil
	metrics.UpdateStoreRecords(atom.KindVoiceCallRatUsage.String(), 0)
	return out
}

// VoiceCallSessions implements Store.
func (s *MemStore) VoiceCallSessions(ctx context.Context) []model.VoiceCallSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.callSessions
	s.callSessions = nil
	metrics.UpdateStoreRecords(atom.KindVoiceCallSession.String(), 0)
	return out
}

// IncomingSms implements Store.
func (s *MemStore) IncomingSms(ctx context.Context) []model.IncomingSms {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.incomingSms
	s.incomingSms = nil
	metrics.UpdateStoreRecords(atom.KindIncomingSms.String(), 0)
	return out
}

// OutgoingSms implements Store.
func (s *MemStore) OutgoingSms(ctx context.Context) []model.OutgoingSms {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.outgoingSms
	s.outgoingSms = nil
	metrics.UpdateStoreRecords(atom.KindOutgoingSms.String(), 0)
	return out
}

// DataCallSessions implements Store.
func (s *MemStore) DataCallSessions(ctx context.Context) []model.DataCallSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.dataSessions
	s.dataSessions = nil
	metrics.UpdateStoreRecords(atom.KindDataCallSession.String(), 0)
	return out
}

// Counts implements Store.
func (s *MemStore) Counts(ctx context.Context) map[atom.Kind]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[atom.Kind]int, 5)
	for _, k := range []atom.Kind{
		atom.KindVoiceCallRatUsage,
		atom.KindVoiceCallSession,
		atom.KindIncomingSms,
		atom.KindOutgoingSms,
		atom.KindDataCallSession,
	} {
		counts[k] = s.countLocked(k)
	}
	return counts
}

// countLocked returns the buffer depth for kind. Caller holds s.mu.
func (s *MemStore) countLocked(kind atom.Kind) int {
	switch kind {
	case atom.KindVoiceCallRatUsage:
		return len(s.ratUsages)
	case atom.KindVoiceCallSession:
		return len(s.callSessions)
	case atom.KindIncomingSms:
		return len(s.incomingSms)
	case atom.KindOutgoingSms:
		return len(s.outgoingSms)
	case atom.KindDataCallSession:
		return len(s.dataSessions)
	default:
		return 0
	}
}
