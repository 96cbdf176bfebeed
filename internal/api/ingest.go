package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/tierscope/tierscope/internal/ingestion"
	"github.com/tierscope/tierscope/pkg/assess"
)

// ingestRunRequest is the JSON body for POST /v1/runs.
type ingestRunRequest struct {
	Tenant         string                                      `json:"tenant"`
	Controller     string                                      `json:"controller"`
	IdempotencyKey string                                      `json:"idempotency_key"`
	Metrics        map[string]map[string]assess.MetricSnapshot `json:"metrics"` // category -> entity -> metrics
}

func (h *Handler) handleIngestRun(w http.ResponseWriter, r *http.Request) {
	// Support gzip-compressed request bodies
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body: "+err.Error())
			return
		}
		defer gz.Close()
		body = gz
	}

	var req ingestRunRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Tenant == "" || req.Controller == "" || len(req.Metrics) == 0 {
		writeError(w, http.StatusBadRequest, "tenant, controller, and metrics are required")
		return
	}

	// Without an explicit key each submission is a distinct run.
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}

	ctx := r.Context()
	tenantID, portfolioID, err := h.tenantSvc.EnsureTenantAndPortfolio(ctx, req.Tenant, req.Controller)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to ensure tenant/portfolio: "+err.Error())
		return
	}

	rec, err := h.ingestionSvc.IngestRun(ctx, tenantID, portfolioID, req.IdempotencyKey, ingestion.RunInput{
		Controller: req.Controller,
		Metrics:    req.Metrics,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to ingest run: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, runRecordToResponse(rec))
}
