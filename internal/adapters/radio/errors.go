package radio

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotReady = errors.New("radio subsystem not ready")
)
