package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tierscope/tierscope/internal/ingestion"
	"github.com/tierscope/tierscope/internal/tenant"
)

// createComparisonRequest is the JSON body for POST /v1/comparisons.
// When previous_run_id and current_run_id are omitted, the two most recent
// completed runs of the portfolio are compared.
type createComparisonRequest struct {
	Tenant        string `json:"tenant"`
	Controller    string `json:"controller"`
	PreviousRunID string `json:"previous_run_id"`
	CurrentRunID  string `json:"current_run_id"`
}

type comparisonResponse struct {
	ID            string  `json:"id"`
	PortfolioID   string  `json:"portfolio_id"`
	PreviousRunID string  `json:"previous_run_id"`
	CurrentRunID  string  `json:"current_run_id"`
	Headline      string  `json:"headline"`
	Upgraded      int     `json:"upgraded"`
	Downgraded    int     `json:"downgraded"`
	Unchanged     int     `json:"unchanged"`
	StorageRef    *string `json:"storage_ref,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func comparisonRecordToResponse(rec *ingestion.ComparisonRecord) comparisonResponse {
	return comparisonResponse{
		ID:            rec.ID,
		PortfolioID:   rec.PortfolioID,
		PreviousRunID: rec.PreviousRunID,
		CurrentRunID:  rec.CurrentRunID,
		Headline:      rec.Headline,
		Upgraded:      rec.Upgraded,
		Downgraded:    rec.Downgraded,
		Unchanged:     rec.Unchanged,
		StorageRef:    rec.StorageRef,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
}

func comparisonRowToResponse(row tenant.ComparisonSummaryRow) comparisonResponse {
	return comparisonResponse{
		ID:            row.ID,
		PortfolioID:   row.PortfolioID,
		PreviousRunID: row.PreviousRunID,
		CurrentRunID:  row.CurrentRunID,
		Headline:      row.Headline,
		Upgraded:      row.Upgraded,
		Downgraded:    row.Downgraded,
		Unchanged:     row.Unchanged,
		CreatedAt:     row.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	var req createComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Tenant == "" || req.Controller == "" {
		writeError(w, http.StatusBadRequest, "tenant and controller are required")
		return
	}

	ctx := r.Context()
	t, err := h.tenantSvc.GetTenantByName(ctx, req.Tenant)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown tenant: "+req.Tenant)
		return
	}
	p, err := h.tenantSvc.GetPortfolio(ctx, t.ID, req.Controller)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown portfolio for controller: "+req.Controller)
		return
	}

	prevID, currID := req.PreviousRunID, req.CurrentRunID
	if prevID == "" || currID == "" {
		latest, err := h.tenantSvc.LatestCompletedRuns(ctx, p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to pick runs: "+err.Error())
			return
		}
		if len(latest) < 2 {
			writeError(w, http.StatusConflict, "portfolio needs at least two completed runs to compare")
			return
		}
		currID, prevID = latest[0].ID, latest[1].ID
	}

	rec, err := h.ingestionSvc.CreateComparison(ctx, t.ID, p.ID, prevID, currID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create comparison: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, comparisonRecordToResponse(rec))
}

// handleGetComparison returns the full comparison document.
func (h *Handler) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	comparisonID := r.PathValue("comparisonID")

	var tenantID string
	err := h.db.QueryRowContext(r.Context(),
		`SELECT tenant_id FROM comparisons WHERE id = $1`, comparisonID,
	).Scan(&tenantID)
	if err != nil {
		writeError(w, http.StatusNotFound, "comparison not found: "+comparisonID)
		return
	}

	cmp, err := h.ingestionSvc.GetComparisonDocument(r.Context(), tenantID, comparisonID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load comparison: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

// handleListComparisons lists the comparisons recorded for a portfolio.
func (h *Handler) handleListComparisons(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.PathValue("portfolioID")

	rows, err := h.tenantSvc.ListComparisonsByPortfolio(r.Context(), portfolioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list comparisons: "+err.Error())
		return
	}

	result := make([]comparisonResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, comparisonRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, result)
}
