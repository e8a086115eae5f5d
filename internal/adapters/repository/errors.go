package repository

import "errors"

// Sentinel kinds for tally errors.
var (
	ErrNotFound     = errors.New("bucket not found")
	ErrInvalidLimit = errors.New("invalid tally limit")
)
