package atom

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownKind = errors.New("unknown atom kind")
)
