// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/omahatools/bucketd/internal/domain/buckets"
)

// BucketsHandler serves the fixed bucket enumeration contract.
type BucketsHandler struct{}

// NewBucketsHandler creates a new buckets handler.
func NewBucketsHandler() *BucketsHandler {
	return &BucketsHandler{}
}

// bucketsResponse lists every bucket name in vector order.
type bucketsResponse struct {
	Version string   `json:"version"`
	Count   int      `json:"count"`
	Buckets []string `json:"buckets"`
}

// HandleGetBuckets handles GET /buckets requests.
func (h *BucketsHandler) HandleGetBuckets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, bucketsResponse{
		Version: buckets.Version,
		Count:   int(buckets.NumBuckets),
		Buckets: buckets.Names(),
	})
}
