package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/sale"
	"gymDeskAPI/internal/validate"
	"gymDeskAPI/middleware"
	"gymDeskAPI/services"
)

type SaleHandler struct {
	saleService *services.SaleService
	log         *slog.Logger
}

func NewSaleHandler(saleService *services.SaleService, log *slog.Logger) *SaleHandler {
	return &SaleHandler{saleService: saleService, log: log}
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := sale.ListSalesQuery{
		Status: r.URL.Query().Get("status"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
	}
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, h.log, apperr.Validation("invalid date", nil))
			return
		}
		q.Date = &t
	}

	sales, pg, err := h.saleService.List(ctx, q)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"data":       sales,
		"pagination": pg,
	})
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req sale.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	in := services.CreateSaleInput{CreateSaleRequest: req}
	if staffID, ok := middleware.GetStaffID(ctx); ok {
		in.StaffID = &staffID
	}

	s, err := h.saleService.Create(ctx, in)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"message": "Sale created successfully",
		"sale":    s,
	})
}
