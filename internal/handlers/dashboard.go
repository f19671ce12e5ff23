package handlers

import (
	"net/http"

	"vontara-backend/internal/analytics"
)

type DashboardHandler struct {
	svc *analytics.Service
}

func NewDashboardHandler(svc *analytics.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats returns the aggregate snapshot shown on the admin dashboard. Computed
// fresh per request; with an empty event log everything comes back zeroed.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dashboard(r.Context()))
}
