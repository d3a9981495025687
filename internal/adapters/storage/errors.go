package storage

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnsupportedKind = errors.New("kind is not buffered by the store")
)
