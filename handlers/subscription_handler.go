package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/subscription"
	"gymDeskAPI/internal/validate"
	"gymDeskAPI/services"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	log                 *slog.Logger
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, log *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, log: log}
}

// ListForMember handles GET /members/{id}/subscriptions.
func (h *SubscriptionHandler) ListForMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	memberID, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	subs, err := h.subscriptionService.ListByMember(ctx, memberID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"data": subs})
}

// Assign handles POST /members/{id}/subscriptions.
func (h *SubscriptionHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	memberID, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var req subscription.AssignPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		respondError(w, h.log, apperr.Validation("invalid planId", nil))
		return
	}

	var startDate *time.Time
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			respondError(w, h.log, apperr.Validation("invalid startDate", nil))
			return
		}
		startDate = &t
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	sub, err := h.subscriptionService.Assign(ctx, memberID, planID, startDate, notes)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, sub)
}

// Cancel handles POST /subscriptions/{id}/cancel.
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	sub, err := h.subscriptionService.Cancel(ctx, id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}
