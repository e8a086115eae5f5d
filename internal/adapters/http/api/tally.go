// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
)

// TallyDependencies defines the interface for tally listing operations.
type TallyDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// TallyHandler handles tally listing requests.
type TallyHandler struct {
	deps     TallyDependencies
	maxLimit int
}

// NewTallyHandler creates a new tally handler.
func NewTallyHandler(deps TallyDependencies, maxLimit int) *TallyHandler {
	return &TallyHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTally handles GET /tally?limit=N requests.
func (h *TallyHandler) HandleGetTally(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_tally"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
