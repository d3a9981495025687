package aggregate_test

import (
	"testing"

	"github.com/okian/atompull/internal/domain/aggregate"
	"github.com/okian/atompull/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRound(t *testing.T) {
	Convey("Given the duration bucketer", t, func() {
		Convey("When rounding 430000ms into 300000ms buckets", func() {
			So(aggregate.Round(430000, 300000), ShouldEqual, 300000)
		})

		Convey("When the value sits exactly on the tie", func() {
			// Half rounds up.
			So(aggregate.Round(150000, 300000), ShouldEqual, 300000)
			So(aggregate.Round(149999, 300000), ShouldEqual, 0)
		})

		Convey("When rounding a range of values", func() {
			cases := []struct {
				value, bucket int64
			}{
				{0, 300000},
				{1, 2000},
				{430000, 300000},
				{7*60000 + 10000, 5 * 60000},
				{999999, 2000},
				{123456789, 5 * 60000},
			}
			for _, c := range cases {
				got := aggregate.Round(c.value, c.bucket)

				So(got%c.bucket, ShouldEqual, 0)
				diff := got - c.value
				if diff < 0 {
					diff = -diff
				}
				So(diff, ShouldBeLessThanOrEqualTo, c.bucket/2)
			}
		})
	})
}

func TestFold(t *testing.T) {
	Convey("Given raw RAT usage entries", t, func() {
		Convey("When entries share a key", func() {
			folded := aggregate.Fold([]model.VoiceCallRatUsage{
				{CarrierID: 1, Rat: 2, TotalDurationMillis: 100000, CallCount: 3},
				{CarrierID: 1, Rat: 2, TotalDurationMillis: 50000, CallCount: 1},
			})

			Convey("Then they merge into one bucket with summed fields", func() {
				So(folded, ShouldHaveLength, 1)
				So(folded[0].TotalDurationMillis, ShouldEqual, 150000)
				So(folded[0].CallCount, ShouldEqual, 4)
			})
		})

		Convey("When keys differ", func() {
			folded := aggregate.Fold([]model.VoiceCallRatUsage{
				{CarrierID: 1, Rat: 2, CallCount: 1},
				{CarrierID: 2, Rat: 2, CallCount: 1},
				{CarrierID: 1, Rat: 3, CallCount: 1},
			})

			Convey("Then each keeps its own bucket, in first-seen order", func() {
				So(folded, ShouldHaveLength, 3)
				So(folded[0].CarrierID, ShouldEqual, 1)
				So(folded[0].Rat, ShouldEqual, 2)
				So(folded[1].CarrierID, ShouldEqual, 2)
				So(folded[2].Rat, ShouldEqual, 3)
			})
		})

		Convey("When the input is empty", func() {
			So(aggregate.Fold(nil), ShouldBeEmpty)
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given aggregate buckets", t, func() {
		buckets := []model.VoiceCallRatUsage{
			{CarrierID: 1, Rat: 1, CallCount: 4},
			{CarrierID: 1, Rat: 2, CallCount: 5},
			{CarrierID: 2, Rat: 1, CallCount: 0},
			{CarrierID: 2, Rat: 2, CallCount: 100},
		}

		Convey("When filtering with a floor of 5", func() {
			kept := aggregate.Filter(buckets, 5)

			Convey("Then only buckets at or above the floor survive, in order", func() {
				So(kept, ShouldHaveLength, 2)
				So(kept[0].Rat, ShouldEqual, 2)
				So(kept[0].CarrierID, ShouldEqual, 1)
				So(kept[1].CallCount, ShouldEqual, 100)
			})
		})

		Convey("When the floor is zero", func() {
			Convey("Then filtering is the identity", func() {
				So(aggregate.Filter(buckets, 0), ShouldResemble, buckets)
			})
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given unsorted aggregate buckets", t, func() {
		buckets := []model.VoiceCallRatUsage{
			{CarrierID: 2, Rat: 1, CallCount: 1},
			{CarrierID: 1, Rat: 3, CallCount: 2},
			{CarrierID: 1, Rat: 2, CallCount: 3},
			{CarrierID: 2, Rat: 0, CallCount: 4},
		}

		Convey("When sorting", func() {
			sorted := aggregate.Sort(buckets)

			Convey("Then the carrier dominates and RAT breaks ties", func() {
				So(sorted[0], ShouldResemble, model.VoiceCallRatUsage{CarrierID: 1, Rat: 2, CallCount: 3})
				So(sorted[1], ShouldResemble, model.VoiceCallRatUsage{CarrierID: 1, Rat: 3, CallCount: 2})
				So(sorted[2], ShouldResemble, model.VoiceCallRatUsage{CarrierID: 2, Rat: 0, CallCount: 4})
				So(sorted[3], ShouldResemble, model.VoiceCallRatUsage{CarrierID: 2, Rat: 1, CallCount: 1})
			})

			Convey("Then re-sorting is a no-op", func() {
				So(aggregate.Sort(sorted), ShouldResemble, sorted)
			})

			Convey("Then the input is left untouched", func() {
				So(buckets[0].CarrierID, ShouldEqual, 2)
			})
		})

		Convey("When sorting the same data in a different order", func() {
			other := []model.VoiceCallRatUsage{buckets[3], buckets[1], buckets[0], buckets[2]}

			Convey("Then both runs yield identical sequences", func() {
				So(aggregate.Sort(other), ShouldResemble, aggregate.Sort(buckets))
			})
		})

		Convey("When keys collide", func() {
			dup := []model.VoiceCallRatUsage{
				{CarrierID: 1, Rat: 1, CallCount: 7},
				{CarrierID: 1, Rat: 1, CallCount: 9},
			}

			Convey("Then equal elements keep their relative order", func() {
				sorted := aggregate.Sort(dup)
				So(sorted[0].CallCount, ShouldEqual, 7)
				So(sorted[1].CallCount, ShouldEqual, 9)
			})
		})
	})
}

func TestRoundDurations(t *testing.T) {
	Convey("Given buckets with raw durations", t, func() {
		buckets := []model.VoiceCallRatUsage{
			{CarrierID: 1, Rat: 1, TotalDurationMillis: 430000, CallCount: 5},
			{CarrierID: 1, Rat: 2, TotalDurationMillis: 450000, CallCount: 5},
		}

		Convey("When rounding into 300000ms buckets", func() {
			rounded := aggregate.RoundDurations(buckets, 300000)

			Convey("Then each duration lands on a bucket boundary", func() {
				So(rounded[0].TotalDurationMillis, ShouldEqual, 300000)
				So(rounded[1].TotalDurationMillis, ShouldEqual, 600000)
			})

			Convey("Then the input is left untouched", func() {
				So(buckets[0].TotalDurationMillis, ShouldEqual, 430000)
			})
		})
	})
}
