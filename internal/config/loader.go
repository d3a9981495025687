package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ATOMPULL_CONFIG is set
//  3. env (prefix ATOMPULL_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ATOMPULL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ATOMPULL_ADDR, ATOMPULL_QUEUE_SIZE, ...
	// Keys keep their underscores to match koanf tags on the struct;
	// a double underscore descends into nested sections, e.g.
	// ATOMPULL_RADIO__SIM_SLOTS -> radio.sim_slots.
	envProvider := env.Provider("ATOMPULL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "atompull_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Debug {
		cfg.ApplyDebug()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the collector cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DurationBucketMillis <= 0:
		return fmt.Errorf("%w: duration_bucket_millis must be positive", ErrInvalidConfig)
	case c.MinCooldownMillis < 0:
		return fmt.Errorf("%w: min_cooldown_millis must not be negative", ErrInvalidConfig)
	case c.MinCallsPerBucket < 0:
		return fmt.Errorf("%w: min_calls_per_bucket must not be negative", ErrInvalidConfig)
	case c.PullRatePerSec <= 0:
		return fmt.Errorf("%w: pull_rate_per_sec must be positive", ErrInvalidConfig)
	}
	return nil
}
