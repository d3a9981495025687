package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrAmbiguousPayload = errors.New("raw event must carry exactly one payload")
)
