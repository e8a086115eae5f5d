// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/internal/domain/card"
)

// ClassifyDependencies defines the interface for synchronous classification.
type ClassifyDependencies interface {
	Classify(ctx context.Context, hole, board string) (buckets.Vector, error)
}

// ClassifyHandler handles synchronous classification requests.
type ClassifyHandler struct {
	deps ClassifyDependencies
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(deps ClassifyDependencies) *ClassifyHandler {
	return &ClassifyHandler{deps: deps}
}

// classifyRequest mirrors the OpenAPI schema for POST /classify.
type classifyRequest struct {
	Hole  string `json:"hole"`
	Board string `json:"board"`
}

func (c classifyRequest) validate() error {
	switch {
	case strings.TrimSpace(c.Hole) == "":
		return errors.New("missing hole")
	case strings.TrimSpace(c.Board) == "":
		return errors.New("missing board")
	}
	return nil
}

// classifyResponse carries the full feature vector plus the names of the
// buckets that fired for this hand.
type classifyResponse struct {
	Hole    string   `json:"hole"`
	Board   string   `json:"board"`
	Version string   `json:"version"`
	Buckets []string `json:"buckets"`
	Vector  []int    `json:"vector"`
}

// HandleClassify handles POST /classify requests.
func (h *ClassifyHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	vector, err := h.deps.Classify(r.Context(), req.Hole, req.Board)
	if err != nil {
		if errors.Is(err, card.ErrParse) || errors.Is(err, buckets.ErrCardinality) {
			writeError(w, http.StatusBadRequest, "invalid_hand", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	fired := make([]string, 0, 8)
	for b := buckets.Bucket(0); b < buckets.NumBuckets; b++ {
		if vector.Has(b) {
			fired = append(fired, b.String())
		}
	}
	writeJSON(w, http.StatusOK, classifyResponse{
		Hole:    req.Hole,
		Board:   req.Board,
		Version: buckets.Version,
		Buckets: fired,
		Vector:  vector.Ints(),
	})
}
