package buckets

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrCardinality marks structurally invalid inputs: duplicate cards across
	// the hole/board union, or hole/board sizes outside the supported ranges.
	ErrCardinality = errors.New("invalid hand cardinality")
)
