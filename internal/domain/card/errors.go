package card

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrParse = errors.New("card parse failed")
)
