package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"gymDeskAPI/internal/plan"
	"gymDeskAPI/internal/validate"
	"gymDeskAPI/services"
)

type PlanHandler struct {
	planService *services.PlanService
	log         *slog.Logger
}

func NewPlanHandler(planService *services.PlanService, log *slog.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, log: log}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plans, err := h.planService.List(ctx, queryBool(r, "isActive"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"data": plans})
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req plan.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.planService.Create(ctx, req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, p)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.planService.Get(ctx, id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var req plan.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.planService.Update(ctx, id, req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.planService.Deactivate(ctx, id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Membership plan deactivated successfully",
		"plan":    p,
	})
}
