package api

import (
	"net/http"
	"time"
)

type portfolioResponse struct {
	ID         string `json:"id"`
	Controller string `json:"controller"`
	Name       string `json:"name,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// handleListPortfolios lists the portfolios of a tenant, identified by the
// required ?tenant= query parameter.
func (h *Handler) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	tenantName := r.URL.Query().Get("tenant")
	if tenantName == "" {
		writeError(w, http.StatusBadRequest, "tenant query parameter is required")
		return
	}

	t, err := h.tenantSvc.GetTenantByName(r.Context(), tenantName)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown tenant: "+tenantName)
		return
	}

	portfolios, err := h.tenantSvc.ListPortfolios(r.Context(), t.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list portfolios: "+err.Error())
		return
	}

	result := make([]portfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		result = append(result, portfolioResponse{
			ID:         p.ID,
			Controller: p.Controller,
			Name:       p.Name,
			CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, result)
}
