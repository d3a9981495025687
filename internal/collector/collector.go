// Package collector implements the pull-time aggregation engine.
//
// A pull is one synchronous request for all currently available records
// of one atom kind. The collector decides whether the pull is allowed
// (cooldown), transforms buffered raw records into privacy-safe output
// (duration bucketing, low-population suppression, nonce injection) and
// returns a definite result with the serialized records. Every failure
// mode degrades to Skip; nothing propagates to the host as a fault.
package collector

import (
	"context"
	"time"

	"github.com/okian/atompull/internal/adapters/encode"
	"github.com/okian/atompull/internal/adapters/radio"
	"github.com/okian/atompull/internal/adapters/storage"
	"github.com/okian/atompull/internal/domain/aggregate"
	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/cooldown"
	"github.com/okian/atompull/internal/domain/dimension"
	"github.com/okian/atompull/pkg/logger"
	"github.com/okian/atompull/pkg/metrics"
)

// Default pull policy constants. Debug builds shorten these via options.
const (
	// DefaultMinCooldown leaves margin below a once-a-day pull cadence.
	DefaultMinCooldown = 23 * time.Hour

	// DefaultMinCallsPerBucket suppresses aggregate buckets with fewer
	// calls, so rare carrier/RAT combinations are never disclosed.
	DefaultMinCallsPerBucket = 5

	// DefaultDurationBucketMillis is the rounding granularity for call
	// durations.
	DefaultDurationBucketMillis = 5 * 60 * 1000
)

const millisPerSecond = 1000

// Result is the definite status returned for every pull.
type Result int

const (
	// Success means the pull completed; the record list may be empty.
	Success Result = iota
	// Skip means try again later: cooldown, unknown kind, or a
	// dependency that has not produced a usable value yet.
	Skip
)

// String returns the metrics/wire label for the result.
func (r Result) String() string {
	if r == Success {
		return "success"
	}
	return "skip"
}

// handler produces the records for one atom kind.
type handler func(ctx context.Context) (Result, []encode.Record)

// Collector dispatches pulls by atom kind.
type Collector struct {
	store storage.Store
	radio radio.Info
	gate  *cooldown.Gate
	dis   *dimension.Disambiguator

	minCooldown          time.Duration
	minCallsPerBucket    int64
	durationBucketMillis int64
	now                  func() time.Time

	handlers map[atom.Kind]handler
	logger   logger.Logger
}

// Option applies a configuration option to the Collector.
type Option func(*Collector)

// WithMinCooldown sets the minimum interval between successful pulls of
// a cooldown-gated kind.
func WithMinCooldown(d time.Duration) Option {
	return func(c *Collector) {
		if d >= 0 {
			c.minCooldown = d
		}
	}
}

// WithMinCallsPerBucket sets the aggregate suppression floor. Zero
// disables suppression.
func WithMinCallsPerBucket(n int64) Option {
	return func(c *Collector) {
		if n >= 0 {
			c.minCallsPerBucket = n
		}
	}
}

// WithDurationBucketMillis sets the duration rounding granularity.
func WithDurationBucketMillis(ms int64) Option {
	return func(c *Collector) {
		if ms > 0 {
			c.durationBucketMillis = ms
		}
	}
}

// WithClock replaces the wall clock. Used by tests driving the cooldown.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		if now != nil {
			c.now = now
		}
	}
}

// WithGate replaces the cooldown gate.
func WithGate(g *cooldown.Gate) Option {
	return func(c *Collector) {
		if g != nil {
			c.gate = g
		}
	}
}

// WithDisambiguator replaces the nonce source.
func WithDisambiguator(d *dimension.Disambiguator) Option {
	return func(c *Collector) {
		if d != nil {
			c.dis = d
		}
	}
}

// WithLogger sets a custom logger for the collector.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a Collector over the given store and radio provider.
func New(store storage.Store, info radio.Info, opts ...Option) *Collector {
	c := &Collector{
		store:                store,
		radio:                info,
		gate:                 cooldown.NewGate(),
		dis:                  dimension.NewDisambiguator(),
		minCooldown:          DefaultMinCooldown,
		minCallsPerBucket:    DefaultMinCallsPerBucket,
		durationBucketMillis: DefaultDurationBucketMillis,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("collector")
	}

	// One entry per kind; dispatch never falls through a conditional
	// chain.
	c.handlers = map[atom.Kind]handler{
		atom.KindSimSlotState:               c.pullSimSlotState,
		atom.KindSupportedRadioAccessFamily: c.pullRadioAccessFamily,
		atom.KindCarrierIDTableVersion:      c.pullCarrierIDTableVersion,
		atom.KindVoiceCallRatUsage:          c.pullVoiceCallRatUsages,
		atom.KindVoiceCallSession:           c.pullVoiceCallSessions,
		atom.KindIncomingSms:                c.pullIncomingSms,
		atom.KindOutgoingSms:                c.pullOutgoingSms,
		atom.KindDataCallSession:            c.pullDataCallSessions,
	}
	return c
}

// OnPull answers one pull request. The result is always definite: an
// unknown kind, an unelapsed cooldown or an unready dependency all
// yield Skip with an empty list. An empty list under Success is valid.
func (c *Collector) OnPull(ctx context.Context, kind atom.Kind) (Result, []encode.Record) {
	start := time.Now()

	h, ok := c.handlers[kind]
	if !ok {
		c.logger.Error(ctx, "unexpected atom kind", logger.Int32("kind", int32(kind)))
		metrics.RecordPull(kind.String(), Skip.String())
		return Skip, nil
	}

	result, records := h(ctx)

	latencyMs := float64(time.Since(start).Milliseconds())
	metrics.RecordPull(kind.String(), result.String())
	metrics.RecordPullLatency(kind.String(), latencyMs)
	if result == Success {
		metrics.RecordRecordsEmitted(kind.String(), len(records))
	}
	return result, records
}

// tryConsumeCooldown applies the gate for a buffered kind. The gate is
// the single owner of cooldown bookkeeping; the store never duplicates
// the check.
func (c *Collector) tryConsumeCooldown(ctx context.Context, kind atom.Kind) bool {
	if c.gate.TryConsume(kind, c.minCooldown, c.now()) {
		return true
	}
	c.logger.Warn(ctx, "pull too frequent, skipping", logger.String("kind", kind.String()))
	return false
}

func (c *Collector) pullVoiceCallRatUsages(ctx context.Context) (Result, []encode.Record) {
	if !c.tryConsumeCooldown(ctx, atom.KindVoiceCallRatUsage) {
		return Skip, nil
	}
	usages := c.store.VoiceCallRatUsages(ctx)

	buckets := aggregate.Fold(usages)
	buckets = aggregate.RoundDurations(buckets, c.durationBucketMillis)
	kept := aggregate.Filter(buckets, c.minCallsPerBucket)
	metrics.RecordBucketsSuppressed(len(buckets) - len(kept))
	kept = aggregate.Sort(kept)

	records := make([]encode.Record, 0, len(kept))
	for _, b := range kept {
		records = append(records, buildRatUsageRecord(b))
	}
	c.logger.Debug(ctx, "voice call RAT usage pulled",
		logger.Int("emitted", len(records)),
		logger.Int("raw", len(usages)),
	)
	return Success, records
}

func (c *Collector) pullVoiceCallSessions(ctx context.Context) (Result, []encode.Record) {
	if !c.tryConsumeCooldown(ctx, atom.KindVoiceCallSession) {
		return Skip, nil
	}
	sessions := c.store.VoiceCallSessions(ctx)
	records := make([]encode.Record, 0, len(sessions))
	for _, s := range sessions {
		// Identical sessions in one batch must stay distinct downstream;
		// the nonce is the disambiguating dimension.
		records = append(records, buildVoiceCallSessionRecord(s, c.dis.Nonce()))
	}
	return Success, records
}

func (c *Collector) pullIncomingSms(ctx context.Context) (Result, []encode.Record) {
	if !c.tryConsumeCooldown(ctx, atom.KindIncomingSms) {
		return Skip, nil
	}
	smsList := c.store.IncomingSms(ctx)
	records := make([]encode.Record, 0, len(smsList))
	for _, sms := range smsList {
		records = append(records, buildIncomingSmsRecord(sms))
	}
	return Success, records
}

func (c *Collector) pullOutgoingSms(ctx context.Context) (Result, []encode.Record) {
	if !c.tryConsumeCooldown(ctx, atom.KindOutgoingSms) {
		return Skip, nil
	}
	smsList := c.store.OutgoingSms(ctx)
	records := make([]encode.Record, 0, len(smsList))
	for _, sms := range smsList {
		records = append(records, buildOutgoingSmsRecord(sms))
	}
	return Success, records
}

func (c *Collector) pullDataCallSessions(ctx context.Context) (Result, []encode.Record) {
	if !c.tryConsumeCooldown(ctx, atom.KindDataCallSession) {
		return Skip, nil
	}
	sessions := c.store.DataCallSessions(ctx)
	records := make([]encode.Record, 0, len(sessions))
	for _, s := range sessions {
		records = append(records, buildDataCallSessionRecord(s))
	}
	return Success, records
}

func (c *Collector) pullSimSlotState(ctx context.Context) (Result, []encode.Record) {
	state, err := c.radio.SimSlotState(ctx)
	if err != nil {
		c.logger.Info(ctx, "sim slot state unavailable, skipping", logger.Error(err))
		return Skip, nil
	}
	return Success, []encode.Record{buildSimSlotStateRecord(state)}
}

func (c *Collector) pullRadioAccessFamily(ctx context.Context) (Result, []encode.Record) {
	raf, err := c.radio.RadioAccessFamily(ctx)
	if err != nil {
		c.logger.Info(ctx, "radio access family unavailable, skipping", logger.Error(err))
		return Skip, nil
	}
	return Success, []encode.Record{buildRadioAccessFamilyRecord(raf)}
}

func (c *Collector) pullCarrierIDTableVersion(ctx context.Context) (Result, []encode.Record) {
	version, err := c.radio.CarrierIDTableVersion(ctx)
	if err != nil {
		c.logger.Info(ctx, "carrier ID table version unavailable, skipping", logger.Error(err))
		return Skip, nil
	}
	if version == radio.UnknownCarrierIDTableVersion {
		// Never emit the sentinel as if it were real data.
		c.logger.Info(ctx, "carrier ID table version unknown, skipping")
		return Skip, nil
	}
	return Success, []encode.Record{buildCarrierIDTableVersionRecord(version)}
}
