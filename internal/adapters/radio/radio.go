// Package radio abstracts the radio subsystem queried by live-snapshot
// pulls. The real platform wires in its own implementation; the static
// provider below covers standalone deployments and tests.
package radio

import (
	"context"

	"github.com/okian/atompull/internal/domain/model"
)

// UnknownCarrierIDTableVersion is the sentinel reported before the
// carrier ID table has been resolved. A pull observing it must skip
// rather than emit the sentinel as real data.
const UnknownCarrierIDTableVersion int32 = -1

// Info answers the live-computed pulls. Implementations return
// ErrNotReady until the underlying subsystem has initialized; callers
// treat that as an expected, recoverable condition.
type Info interface {
	// SimSlotState reports the current SIM slot population.
	SimSlotState(ctx context.Context) (model.SimSlotState, error)

	// RadioAccessFamily reports the bitmask of radio access families
	// supported across all active modems.
	RadioAccessFamily(ctx context.Context) (int64, error)

	// CarrierIDTableVersion reports the carrier ID table version, or
	// UnknownCarrierIDTableVersion if it has not been resolved.
	CarrierIDTableVersion(ctx context.Context) (int32, error)
}
