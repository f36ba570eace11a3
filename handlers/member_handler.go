package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"gymDeskAPI/internal/member"
	"gymDeskAPI/internal/validate"
	"gymDeskAPI/services"
)

type MemberHandler struct {
	memberService *services.MemberService
	log           *slog.Logger
}

func NewMemberHandler(memberService *services.MemberService, log *slog.Logger) *MemberHandler {
	return &MemberHandler{memberService: memberService, log: log}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := member.ListMembersQuery{
		Search:   r.URL.Query().Get("search"),
		IsActive: queryBool(r, "isActive"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}

	members, pg, err := h.memberService.List(ctx, q)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"data":       members,
		"pagination": pg,
	})
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req member.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	m, err := h.memberService.Create(ctx, req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, m)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	m, err := h.memberService.Get(ctx, id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	var req member.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	m, err := h.memberService.Update(ctx, id, req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	if err := h.memberService.Deactivate(ctx, id); err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Member deactivated successfully",
	})
}
