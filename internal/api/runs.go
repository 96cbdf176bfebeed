package api

import (
	"net/http"
	"time"

	"github.com/tierscope/tierscope/internal/ingestion"
	"github.com/tierscope/tierscope/internal/tenant"
)

type runResponse struct {
	ID            string  `json:"id"`
	PortfolioID   string  `json:"portfolio_id"`
	Status        string  `json:"status"`
	Controller    string  `json:"controller"`
	EntityCount   int     `json:"entity_count"`
	CategoryCount int     `json:"category_count"`
	RatedCount    int     `json:"rated_count"`
	Headline      *string `json:"headline,omitempty"`
	Error         *string `json:"error,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func runRecordToResponse(rec *ingestion.RunRecord) runResponse {
	return runResponse{
		ID:            rec.ID,
		PortfolioID:   rec.PortfolioID,
		Status:        rec.Status,
		Controller:    rec.Controller,
		EntityCount:   rec.EntityCount,
		CategoryCount: rec.CategoryCount,
		RatedCount:    rec.RatedCount,
		Headline:      rec.Headline,
		Error:         rec.Error,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
}

func runRowToResponse(row tenant.RunSummaryRow) runResponse {
	return runResponse{
		ID:          row.ID,
		PortfolioID: row.PortfolioID,
		Status:      row.Status,
		Controller:  row.Controller,
		EntityCount: row.EntityCount,
		RatedCount:  row.RatedCount,
		Headline:    row.Headline,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
	}
}

// handleGetRun returns the metadata row for a run.
func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")

	rec, err := h.ingestionSvc.GetRunRecord(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found: "+runID)
		return
	}
	writeJSON(w, http.StatusOK, runRecordToResponse(rec))
}

// handleGetRunDocument returns the full graded run document, consulting the
// in-memory cache before blob storage.
func (h *Handler) handleGetRunDocument(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")

	if run := h.cache.Get(runID); run != nil {
		writeJSON(w, http.StatusOK, run)
		return
	}

	rec, err := h.ingestionSvc.GetRunRecord(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found: "+runID)
		return
	}
	if rec.Status != ingestion.StatusCompleted {
		writeError(w, http.StatusConflict, "run is not completed: "+rec.Status)
		return
	}

	run, err := h.ingestionSvc.GetRunDocument(r.Context(), rec.TenantID, runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load run document: "+err.Error())
		return
	}

	h.cache.Put(runID, run)
	writeJSON(w, http.StatusOK, run)
}

// handleListRuns lists the runs recorded for a portfolio, newest first.
func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.PathValue("portfolioID")

	rows, err := h.tenantSvc.ListRunsByPortfolio(r.Context(), portfolioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs: "+err.Error())
		return
	}

	result := make([]runResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, runRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, result)
}
