// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/omahatools/bucketd/internal/adapters/repository"
	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/internal/domain/model"
	"github.com/omahatools/bucketd/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Classify evaluates one hand synchronously, without touching the tally.
	Classify(ctx context.Context, hole, board string) (buckets.Vector, error)

	// Enqueue pushes a hand for async processing. Returns false on backpressure.
	Enqueue(ctx context.Context, h model.Hand) bool

	// Read operations expose tally data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, bucket string) (Entry, error)
}

// Entry mirrors the read shape returned by tally queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	classifyHandler *ClassifyHandler
	handsHandler    *HandsHandler
	bucketsHandler  *BucketsHandler
	tallyHandler    *TallyHandler
	rankHandler     *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTallyLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		classifyHandler: NewClassifyHandler(deps),
		handsHandler:    NewHandsHandler(deps),
		bucketsHandler:  NewBucketsHandler(),
		tallyHandler:    NewTallyHandler(deps, maxTallyLimit),
		rankHandler:     NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/classify", MetricsMiddleware(s.classifyHandler.HandleClassify, "classify"))
	mux.HandleFunc("/hands", MetricsMiddleware(s.handsHandler.HandlePostHand, "hands"))
	mux.HandleFunc("/buckets", MetricsMiddleware(s.bucketsHandler.HandleGetBuckets, "buckets"))
	mux.HandleFunc("/tally", MetricsMiddleware(s.tallyHandler.HandleGetTally, "tally"))
	mux.HandleFunc("/tally/", MetricsMiddleware(s.rankHandler.HandleGetBucket, "tally_bucket"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates the tally store's not-found condition to a 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
