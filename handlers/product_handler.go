package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"gymDeskAPI/internal/product"
	"gymDeskAPI/internal/validate"
	"gymDeskAPI/services"
)

type ProductHandler struct {
	productService *services.ProductService
	log            *slog.Logger
}

func NewProductHandler(productService *services.ProductService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, log: log}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := product.ListProductsQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		LowStock: r.URL.Query().Get("lowStock") == "true",
		IsActive: queryBool(r, "isActive"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}

	products, pg, err := h.productService.List(ctx, q)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"data":       products,
		"pagination": pg,
	})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req product.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.productService.Create(ctx, req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.productService.Get(ctx, id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var req product.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.productService.Update(ctx, id, req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	p, err := h.productService.Deactivate(ctx, id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Product deactivated successfully",
		"product": p,
	})
}
