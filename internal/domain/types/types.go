// Package types contains common types used across the application
package types

// Entry represents one row of the bucket tally ranking.
type Entry struct {
	Rank   int     `json:"rank"`
	Bucket string  `json:"bucket"`
	Count  uint64  `json:"count"`
	Share  float64 `json:"share"`
}
