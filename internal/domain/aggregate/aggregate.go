// Package aggregate implements the pull-time transformations applied to
// voice call RAT usage buckets: folding by composite key, rounding
// durations into fixed-size buckets, suppressing low-population buckets,
// and imposing a deterministic order.
//
// All functions are pure; inputs are never mutated.
package aggregate

import (
	"sort"

	"github.com/okian/atompull/internal/domain/model"
)

// Round rounds value to the nearest multiple of bucketSize, half up.
// bucketSize must be positive; violating that is a programming error in
// the caller, not a recoverable condition.
func Round(value, bucketSize int64) int64 {
	return ((value + bucketSize/2) / bucketSize) * bucketSize
}

// Fold merges usages sharing the same (carrier, RAT) key into a single
// bucket, summing duration and call count. Buckets keep the order in
// which their key first appeared, so repeated folds of the same input
// produce the same sequence.
func Fold(usages []model.VoiceCallRatUsage) []model.VoiceCallRatUsage {
	if len(usages) == 0 {
		return nil
	}
	index := make(map[int64]int, len(usages))
	folded := make([]model.VoiceCallRatUsage, 0, len(usages))
	for _, u := range usages {
		key := u.Key()
		if i, ok := index[key]; ok {
			folded[i].TotalDurationMillis += u.TotalDurationMillis
			folded[i].CallCount += u.CallCount
			continue
		}
		index[key] = len(folded)
		folded = append(folded, u)
	}
	return folded
}

// RoundDurations returns a copy of buckets with each total duration
// rounded to the nearest multiple of bucketSizeMillis.
func RoundDurations(buckets []model.VoiceCallRatUsage, bucketSizeMillis int64) []model.VoiceCallRatUsage {
	out := make([]model.VoiceCallRatUsage, len(buckets))
	for i, b := range buckets {
		b.TotalDurationMillis = Round(b.TotalDurationMillis, bucketSizeMillis)
		out[i] = b
	}
	return out
}

// Filter retains only buckets with at least minCount calls. A minCount
// of zero is the identity. Relative order of survivors is preserved.
func Filter(buckets []model.VoiceCallRatUsage, minCount int64) []model.VoiceCallRatUsage {
	out := make([]model.VoiceCallRatUsage, 0, len(buckets))
	for _, b := range buckets {
		if b.CallCount >= minCount {
			out = append(out, b)
		}
	}
	return out
}

// Sort returns buckets ordered by the composite key (carrier << 32) | rat,
// ascending. The sort is stable: equal keys keep their fold order, so
// repeated pulls over the same data serialize identically.
func Sort(buckets []model.VoiceCallRatUsage) []model.VoiceCallRatUsage {
	out := make([]model.VoiceCallRatUsage, len(buckets))
	copy(out, buckets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out
}
