// Package api implements the hosted Tierscope REST API.
// It provides run ingest, comparison, and portfolio read endpoints backed by
// Postgres and blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/tierscope/tierscope/internal/ingestion"
	"github.com/tierscope/tierscope/internal/tenant"
)

// Handler is the top-level API handler for the hosted Tierscope service.
type Handler struct {
	db           *sql.DB
	tenantSvc    *tenant.Service
	ingestionSvc *ingestion.Service
	cache        *RunCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, tenantSvc *tenant.Service, ingestionSvc *ingestion.Service, cache *RunCache) *Handler {
	if cache == nil {
		cache = NewRunCacheFromEnv()
	}
	return &Handler{
		db:           db,
		tenantSvc:    tenantSvc,
		ingestionSvc: ingestionSvc,
		cache:        cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /v1/runs", h.handleIngestRun)
	mux.HandleFunc("POST /v1/comparisons", h.handleCreateComparison)

	// Read endpoints
	mux.HandleFunc("GET /v1/runs/{runID}", h.handleGetRun)
	mux.HandleFunc("GET /v1/runs/{runID}/document", h.handleGetRunDocument)
	mux.HandleFunc("GET /v1/comparisons/{comparisonID}", h.handleGetComparison)
	mux.HandleFunc("GET /v1/portfolios", h.handleListPortfolios)
	mux.HandleFunc("GET /v1/portfolios/{portfolioID}/runs", h.handleListRuns)
	mux.HandleFunc("GET /v1/portfolios/{portfolioID}/comparisons", h.handleListComparisons)

	mux.HandleFunc("GET /healthz", h.handleHealthz)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
