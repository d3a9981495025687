package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/atompull/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	convey.Convey("Given a default configuration", t, func() {
		cfg := config.New()

		convey.Convey("Then the pull policy matches the production cadence", func() {
			convey.So(time.Duration(cfg.MinCooldownMillis)*time.Millisecond, convey.ShouldEqual, 23*time.Hour)
			convey.So(cfg.MinCallsPerBucket, convey.ShouldEqual, 5)
			convey.So(time.Duration(cfg.DurationBucketMillis)*time.Millisecond, convey.ShouldEqual, 5*time.Minute)
		})

		convey.Convey("Then the service settings are sane", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.QueueSize, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.WorkerCount, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.DedupeSize, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.StoreCapacity, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.PullRatePerSec, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Then the radio provider starts unseeded", func() {
			convey.So(cfg.Radio.AccessFamily, convey.ShouldEqual, 0)
		})
	})
}

func TestApplyDebug(t *testing.T) {
	convey.Convey("Given a default configuration", t, func() {
		cfg := config.New()

		convey.Convey("When debug overrides apply", func() {
			cfg.ApplyDebug()

			convey.Convey("Then the policy shrinks for local iteration", func() {
				convey.So(time.Duration(cfg.MinCooldownMillis)*time.Millisecond, convey.ShouldEqual, 10*time.Second)
				convey.So(cfg.MinCallsPerBucket, convey.ShouldEqual, 0)
				convey.So(time.Duration(cfg.DurationBucketMillis)*time.Millisecond, convey.ShouldEqual, 2*time.Second)
			})
		})
	})
}

func TestLoadDefaults(t *testing.T) {
	convey.Convey("Given no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then defaults load cleanly", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MinCallsPerBucket, convey.ShouldEqual, 5)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATOMPULL_ADDR", ":7070")
	t.Setenv("ATOMPULL_MIN_CALLS_PER_BUCKET", "3")
	t.Setenv("ATOMPULL_QUEUE_SIZE", "512")
	t.Setenv("ATOMPULL_RADIO__SIM_SLOTS", "2")
	t.Setenv("ATOMPULL_RADIO__ACCESS_FAMILY", "76")

	convey.Convey("Given flat and nested environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then the environment wins over defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.MinCallsPerBucket, convey.ShouldEqual, 3)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 512)
		})

		convey.Convey("Then the radio section is populated", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Radio.SimSlots, convey.ShouldEqual, 2)
			convey.So(cfg.Radio.AccessFamily, convey.ShouldEqual, 76)
		})
	})
}

func TestLoadDebugFlag(t *testing.T) {
	t.Setenv("ATOMPULL_DEBUG", "true")

	convey.Convey("Given the debug flag in the environment", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then the debug policy applies after layering", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.MinCooldownMillis, convey.ShouldEqual, 10*1000)
			convey.So(cfg.MinCallsPerBucket, convey.ShouldEqual, 0)
			convey.So(cfg.DurationBucketMillis, convey.ShouldEqual, 2*1000)
		})
	})
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("ATOMPULL_DURATION_BUCKET_MILLIS", "0")

	convey.Convey("Given an invalid override", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then loading fails validation", func() {
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("ATOMPULL_CONFIG", "/nonexistent/config.yaml")

	convey.Convey("Given a config file that does not exist", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then loading fails with a load error", func() {
			convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
		})
	})
}
