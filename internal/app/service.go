// Package app provides the core service that wires the ingest pipeline
// to the pull collector and implements the dependencies required by the
// HTTP API.
package app

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/okian/atompull/internal/adapters/encode"
	eventqueue "github.com/okian/atompull/internal/adapters/mq/queue"
	workerpool "github.com/okian/atompull/internal/adapters/mq/worker"
	"github.com/okian/atompull/internal/adapters/radio"
	"github.com/okian/atompull/internal/adapters/storage"
	"github.com/okian/atompull/internal/collector"
	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/dedupe"
	"github.com/okian/atompull/internal/domain/model"
	"github.com/okian/atompull/pkg/logger"
	"github.com/okian/atompull/pkg/metrics"
)

// Service owns the store, the ingest pipeline and the collector.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      storage.Store
	radioInfo  radio.Info
	collector  *collector.Collector
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount          int
	queueSize            int
	dedupeSize           int
	storeCapacity        int
	minCooldown          time.Duration
	minCallsPerBucket    int64
	durationBucketMillis int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreCapacity bounds each kind's buffer in the event store.
func WithStoreCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.storeCapacity = n
		}
	}
}

// WithMinCooldown sets the pull cooldown window.
func WithMinCooldown(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.minCooldown = d
		}
	}
}

// WithMinCallsPerBucket sets the aggregate suppression floor.
func WithMinCallsPerBucket(n int64) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minCallsPerBucket = n
		}
	}
}

// WithDurationBucketMillis sets the duration rounding granularity.
func WithDurationBucketMillis(ms int64) Option {
	return func(s *Service) {
		if ms > 0 {
			s.durationBucketMillis = ms
		}
	}
}

// WithRadioInfo sets the radio-info provider queried by live pulls.
func WithRadioInfo(info radio.Info) Option {
	return func(s *Service) {
		if info != nil {
			s.radioInfo = info
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:          runtime.NumCPU() * 2,
		queueSize:            100_000,
		dedupeSize:           200_000,
		storeCapacity:        50_000,
		minCooldown:          collector.DefaultMinCooldown,
		minCallsPerBucket:    collector.DefaultMinCallsPerBucket,
		durationBucketMillis: collector.DefaultDurationBucketMillis,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting atompull service...")

	s.store = storage.NewMemStore(storage.WithCapacity(s.storeCapacity))
	if s.radioInfo == nil {
		// Live-snapshot pulls skip until a real provider is wired in.
		s.radioInfo = radio.NewStaticInfo()
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.collector = collector.New(s.store, s.radioInfo,
		collector.WithMinCooldown(s.minCooldown),
		collector.WithMinCallsPerBucket(s.minCallsPerBucket),
		collector.WithDurationBucketMillis(s.durationBucketMillis),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "atompull service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Duration("minCooldown", s.minCooldown),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping atompull service...")

	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "atompull service stopped")
}

// OnPull answers one pull request for the given atom kind.
func (s *Service) OnPull(ctx context.Context, kind atom.Kind) (collector.Result, []encode.Record) {
	s.mu.RLock()
	c := s.collector
	s.mu.RUnlock()

	if c == nil {
		// Not started yet; a definite skip, never a fault.
		return collector.Skip, nil
	}
	return c.OnPull(ctx, kind)
}

// SeenAndRecord atomically checks if an event id was seen and records it
// if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordEventDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen set, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a raw event for asynchronous appending to the store.
// Returns false on backpressure.
func (s *Service) Enqueue(ctx context.Context, e model.RawEvent) bool {
	ok := s.eventQueue.Enqueue(ctx, e)
	if ok {
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	}
	return ok
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		stats["queueLength"] = s.eventQueue.Len(ctx)
		stats["dedupeTracked"] = s.deduper.Size()

		buffered := map[string]int{}
		for kind, n := range s.store.Counts(ctx) {
			buffered[kind.String()] = n
		}
		stats["storeRecords"] = buffered
	}
	return stats
}
