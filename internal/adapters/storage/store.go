// Package storage defines the buffered event store consumed by pulls.
//
// Appends come from the ingest pipeline; each typed consume call
// returns everything accumulated since the previous consume and clears
// the buffer. Cooldown is NOT enforced here: the collector's gate is
// the single owner of that check, so the store stays a plain buffer.
package storage

import (
	"context"

	"github.com/okian/atompull/internal/domain/atom"
	"github.com/okian/atompull/internal/domain/model"
)

// Appender is the write side used by ingest workers.
type Appender interface {
	// Append buffers one raw event. Returns ErrUnsupportedKind when the
	// event's kind is not a buffered kind.
	Append(ctx context.Context, e model.RawEvent) error
}

// Store provides append and consume access to buffered telemetry.
//
// Per-event kinds are inserted at a random position so that consume
// order carries no temporal correlation; callers may disclose the
// returned order as-is.
type Store interface {
	Appender

	// VoiceCallRatUsages returns and clears the buffered RAT usage
	// entries. Entries may repeat a (carrier, RAT) key; folding is the
	// collector's job.
	VoiceCallRatUsages(ctx context.Context) []model.VoiceCallRatUsage

	// VoiceCallSessions returns and clears the buffered call sessions.
	VoiceCallSessions(ctx context.Context) []model.VoiceCallSession

	// IncomingSms returns and clears the buffered incoming SMS records.
	IncomingSms(ctx context.Context) []model.IncomingSms

	// OutgoingSms returns and clears the buffered outgoing SMS records.
	OutgoingSms(ctx context.Context) []model.OutgoingSms

	// DataCallSessions returns and clears the buffered data call sessions.
	DataCallSessions(ctx context.Context) []model.DataCallSession

	// Counts reports the current buffer depth per kind.
	Counts(ctx context.Context) map[atom.Kind]int
}
