// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omahatools/bucketd/internal/domain/model"
)

// Card strings are rank+suit pairs, so hole and board lengths are even.
const (
	minHoleChars  = 8
	maxHoleChars  = 10
	minBoardChars = 6
	maxBoardChars = 10
)

// HandDependencies defines the interface for async hand ingestion.
type HandDependencies interface {
	Enqueue(ctx context.Context, h model.Hand) bool
}

// HandsHandler handles hand ingestion requests.
type HandsHandler struct {
	deps HandDependencies
}

// NewHandsHandler creates a new hands handler.
func NewHandsHandler(deps HandDependencies) *HandsHandler {
	return &HandsHandler{deps: deps}
}

// handRequest mirrors the OpenAPI schema for POST /hands.
type handRequest struct {
	RowID string `json:"row_id"`
	Hole  string `json:"hole"`
	Board string `json:"board"`
}

// validate does a shape check only; full card parsing happens in the worker.
func (h handRequest) validate() error {
	hole := strings.TrimSpace(h.Hole)
	board := strings.TrimSpace(h.Board)
	switch {
	case hole == "":
		return errors.New("missing hole")
	case board == "":
		return errors.New("missing board")
	case len(hole)%2 != 0 || len(hole) < minHoleChars || len(hole) > maxHoleChars:
		return fmt.Errorf("hole must encode 4 or 5 cards, got %q", hole)
	case len(board)%2 != 0 || len(board) < minBoardChars || len(board) > maxBoardChars:
		return fmt.Errorf("board must encode 3 to 5 cards, got %q", board)
	}
	return nil
}

type handAckResponse struct {
	Status string `json:"status"`
	RowID  string `json:"row_id"`
}

// HandlePostHand handles POST /hands requests.
func (h *HandsHandler) HandlePostHand(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_hand"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req handRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.RowID == "" {
		req.RowID = uuid.NewString()
	}

	hand := model.Hand{
		RowID: req.RowID,
		Hole:  strings.TrimSpace(req.Hole),
		Board: strings.TrimSpace(req.Board),
		TS:    time.Now().UTC(),
	}
	if ok := h.deps.Enqueue(r.Context(), hand); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, handAckResponse{Status: "accepted", RowID: req.RowID})
}
