package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okian/atompull/internal/adapters/radio"
	"github.com/okian/atompull/internal/app"
	"github.com/okian/atompull/internal/collector"
	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/model"
	"github.com/okian/atompull/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestServiceLifecycle(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	ctx := context.Background()

	Convey("Given an unstarted service", t, func() {
		svc := app.New(app.WithWorkerCount(2), app.WithQueueSize(16))

		Convey("When pulling before start", func() {
			result, records := svc.OnPull(ctx, atom.KindIncomingSms)

			Convey("Then the pull skips instead of faulting", func() {
				So(result, ShouldEqual, collector.Skip)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("Then stats reflect the running state", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["workerCount"], ShouldEqual, 2)
				So(stats, ShouldContainKey, "queueLength")
				So(stats, ShouldContainKey, "storeRecords")
			})

			Convey("Then stopping twice is harmless", func() {
				svc.Stop()
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestServiceIngestToPull(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	ctx := context.Background()

	Convey("Given a running service with no cooldown", t, func() {
		svc := app.New(
			app.WithWorkerCount(2),
			app.WithQueueSize(64),
			app.WithMinCooldown(0),
			app.WithMinCallsPerBucket(5),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When SMS events are enqueued", func() {
			for i := 0; i < 3; i++ {
				e := model.RawEvent{
					EventID:     fmt.Sprintf("evt-%d", i),
					IncomingSms: &model.IncomingSms{MessageID: int64(i)},
				}
				So(e.Resolve(), ShouldBeNil)
				So(svc.Enqueue(ctx, e), ShouldBeTrue)
			}

			Convey("Then the workers land them in the store", func() {
				So(waitFor(func() bool {
					buffered, _ := svc.GetStats()["storeRecords"].(map[string]int)
					return buffered[atom.KindIncomingSms.String()] == 3
				}), ShouldBeTrue)

				Convey("And a pull drains them", func() {
					result, records := svc.OnPull(ctx, atom.KindIncomingSms)
					So(result, ShouldEqual, collector.Success)
					So(records, ShouldHaveLength, 3)

					result, records = svc.OnPull(ctx, atom.KindIncomingSms)
					So(result, ShouldEqual, collector.Success)
					So(records, ShouldBeEmpty)
				})
			})
		})

		Convey("When RAT usage events fold below the population floor", func() {
			e := model.RawEvent{
				EventID: "usage-1",
				VoiceCallRatUsage: &model.VoiceCallRatUsage{
					CarrierID: 1, Rat: 2, TotalDurationMillis: 430000, CallCount: 4,
				},
			}
			So(e.Resolve(), ShouldBeNil)
			So(svc.Enqueue(ctx, e), ShouldBeTrue)

			So(waitFor(func() bool {
				buffered, _ := svc.GetStats()["storeRecords"].(map[string]int)
				return buffered[atom.KindVoiceCallRatUsage.String()] == 1
			}), ShouldBeTrue)

			Convey("Then the pull succeeds with nothing emitted", func() {
				result, records := svc.OnPull(ctx, atom.KindVoiceCallRatUsage)
				So(result, ShouldEqual, collector.Success)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When duplicate event IDs are recorded", func() {
			So(svc.SeenAndRecord(ctx, "dup-1"), ShouldBeFalse)
			So(svc.SeenAndRecord(ctx, "dup-1"), ShouldBeTrue)

			Convey("Then unrecording opens the ID for a retry", func() {
				svc.Unrecord(ctx, "dup-1")
				So(svc.SeenAndRecord(ctx, "dup-1"), ShouldBeFalse)
				So(svc.Size(), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestServiceLivePulls(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	ctx := context.Background()

	Convey("Given a service with a seeded radio provider", t, func() {
		svc := app.New(
			app.WithWorkerCount(1),
			app.WithRadioInfo(radio.NewStaticInfo(
				radio.WithRadioAccessFamily(0x4c),
				radio.WithCarrierIDTableVersion(9),
			)),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When pulling the live kinds", func() {
			Convey("Then each snapshot comes back", func() {
				result, records := svc.OnPull(ctx, atom.KindSupportedRadioAccessFamily)
				So(result, ShouldEqual, collector.Success)
				So(records, ShouldHaveLength, 1)

				result, records = svc.OnPull(ctx, atom.KindCarrierIDTableVersion)
				So(result, ShouldEqual, collector.Success)
				So(records[0].Fields()[0], ShouldEqual, int32(9))
			})
		})
	})

	Convey("Given a service with the default unready provider", t, func() {
		svc := app.New(app.WithWorkerCount(1))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When pulling a live kind", func() {
			result, records := svc.OnPull(ctx, atom.KindSimSlotState)

			Convey("Then the pull skips", func() {
				So(result, ShouldEqual, collector.Skip)
				So(records, ShouldBeEmpty)
			})
		})
	})
}
