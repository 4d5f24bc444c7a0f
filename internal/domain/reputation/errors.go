package reputation

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrScoreOutOfRange = errors.New("review sub-score out of range")
	ErrInvalidParams   = errors.New("invalid reputation params")
)
