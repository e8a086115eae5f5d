// Package model contains domain models passed between layers.
package model

import "time"

// Hand represents one classification request submitted by clients.
// Fields mirror the OpenAPI schema for /hands.
type Hand struct {
	RowID string    // unique id for idempotency
	Hole  string    // concatenated hole cards, e.g. "As2c7h9d"
	Board string    // concatenated board cards, e.g. "9c5d3h"
	TS    time.Time // submission timestamp
}
