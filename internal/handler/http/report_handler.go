package http

import (
	"net/http"

	"github.com/SankurTW/Restaurant-Management-System/internal/auth"
	"github.com/SankurTW/Restaurant-Management-System/internal/report"
	"github.com/go-chi/chi/v5"
)

type ReportHandler struct {
	service report.Service
}

func NewReportHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router chi.Router) {
	router.With(auth.RequireRole(auth.RoleAdmin)).
		Get("/dashboard/stats", h.handleDashboardStats)
}

func (h *ReportHandler) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to build dashboard stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
