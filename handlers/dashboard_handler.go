package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gymDeskAPI/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	log              *slog.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: log}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sum, err := h.dashboardService.Summary(ctx)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sum)
}
