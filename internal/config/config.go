// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Millisecond-denominated defaults for the pull policy. Debug mode
// swaps in the short variants to ease local iteration.
const (
	defaultMinCooldownMillis = 23 * 60 * 60 * 1000
	debugMinCooldownMillis   = 10 * 1000

	defaultDurationBucketMillis = 5 * 60 * 1000
	debugDurationBucketMillis   = 2 * 1000

	defaultMinCallsPerBucket = 5
)

// RadioConfig seeds the static radio-info provider. AccessFamily zero
// means the provider starts not ready and live-snapshot pulls skip.
type RadioConfig struct {
	SimSlots              int32 `koanf:"sim_slots"`
	ActiveSims            int32 `koanf:"active_sims"`
	ActiveEsims           int32 `koanf:"active_esims"`
	AccessFamily          int64 `koanf:"access_family"`
	CarrierIDTableVersion int32 `koanf:"carrier_id_table_version"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Debug shortens the cooldown, drops the bucket population floor
	// and shrinks the duration bucket for local runs.
	Debug bool `koanf:"debug"`

	// MinCooldownMillis is the minimum interval between two successful
	// pulls of the same cooldown-gated kind.
	MinCooldownMillis int64 `koanf:"min_cooldown_millis"`

	// MinCallsPerBucket is the aggregate suppression floor.
	MinCallsPerBucket int64 `koanf:"min_calls_per_bucket"`

	// DurationBucketMillis is the call duration rounding granularity.
	DurationBucketMillis int64 `koanf:"duration_bucket_millis"`

	// QueueSize bounds the in-memory ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreCapacity bounds each kind's buffer in the event store.
	StoreCapacity int `koanf:"store_capacity"`

	// PullRatePerSec and PullBurst shape the HTTP pull endpoint limiter.
	PullRatePerSec float64 `koanf:"pull_rate_per_sec"`
	PullBurst      int     `koanf:"pull_burst"`

	// Radio seeds the static radio-info provider.
	Radio RadioConfig `koanf:"radio"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		MinCooldownMillis:    defaultMinCooldownMillis,
		MinCallsPerBucket:    defaultMinCallsPerBucket,
		DurationBucketMillis: defaultDurationBucketMillis,
		QueueSize:            100_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           200_000,
		StoreCapacity:        50_000,
		PullRatePerSec:       5,
		PullBurst:            10,
	}
}

// ApplyDebug overwrites the pull policy with the short debug variants.
// Call after loading when Debug is set.
func (c *Config) ApplyDebug() {
	c.MinCooldownMillis = debugMinCooldownMillis
	c.MinCallsPerBucket = 0
	c.DurationBucketMillis = debugDurationBucketMillis
}
