package cooldown_test

import (
	"sync"
	"testing"
	"time"

	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/cooldown"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGateTryConsume(t *testing.T) {
	Convey("Given a fresh gate and a 23h interval", t, func() {
		gate := cooldown.NewGate()
		interval := 23 * time.Hour
		t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		Convey("When a kind is pulled for the first time", func() {
			So(gate.TryConsume(atom.KindIncomingSms, interval, t0), ShouldBeTrue)

			Convey("Then an immediate retry is rejected", func() {
				So(gate.TryConsume(atom.KindIncomingSms, interval, t0.Add(time.Second)), ShouldBeFalse)
			})

			Convey("Then a retry just under the interval is rejected", func() {
				So(gate.TryConsume(atom.KindIncomingSms, interval, t0.Add(interval-time.Nanosecond)), ShouldBeFalse)
			})

			Convey("Then a retry at exactly the interval is allowed", func() {
				So(gate.TryConsume(atom.KindIncomingSms, interval, t0.Add(interval)), ShouldBeTrue)
			})
		})

		Convey("When a pull is rejected", func() {
			So(gate.TryConsume(atom.KindOutgoingSms, interval, t0), ShouldBeTrue)
			So(gate.TryConsume(atom.KindOutgoingSms, interval, t0.Add(time.Hour)), ShouldBeFalse)

			Convey("Then the recorded timestamp is unchanged", func() {
				last, ok := gate.LastPull(atom.KindOutgoingSms)
				So(ok, ShouldBeTrue)
				So(last, ShouldEqual, t0)
			})

			Convey("Then the window still expires from the original pull", func() {
				So(gate.TryConsume(atom.KindOutgoingSms, interval, t0.Add(interval)), ShouldBeTrue)
			})
		})

		Convey("When different kinds are pulled back to back", func() {
			So(gate.TryConsume(atom.KindIncomingSms, interval, t0), ShouldBeTrue)

			Convey("Then each kind has its own window", func() {
				So(gate.TryConsume(atom.KindOutgoingSms, interval, t0), ShouldBeTrue)
				So(gate.TryConsume(atom.KindDataCallSession, interval, t0), ShouldBeTrue)
				So(gate.TryConsume(atom.KindIncomingSms, interval, t0), ShouldBeFalse)
			})
		})

		Convey("When the interval is zero", func() {
			Convey("Then every pull is allowed", func() {
				So(gate.TryConsume(atom.KindIncomingSms, 0, t0), ShouldBeTrue)
				So(gate.TryConsume(atom.KindIncomingSms, 0, t0), ShouldBeTrue)
			})
		})

		Convey("When a kind has never been pulled", func() {
			Convey("Then no timestamp is recorded", func() {
				_, ok := gate.LastPull(atom.KindVoiceCallSession)
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestGateConcurrentConsume(t *testing.T) {
	Convey("Given concurrent consumers of one kind", t, func() {
		gate := cooldown.NewGate()
		now := time.Now()

		const attempts = 64
		results := make(chan bool, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- gate.TryConsume(atom.KindVoiceCallRatUsage, time.Hour, now)
			}()
		}
		wg.Wait()
		close(results)

		Convey("Then exactly one wins the window", func() {
			allowed := 0
			for ok := range results {
				if ok {
					allowed++
				}
			}
			So(allowed, ShouldEqual, 1)
		})
	})
}
