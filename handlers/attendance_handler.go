package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/attendance"
	"gymDeskAPI/internal/validate"
	"gymDeskAPI/middleware"
	"gymDeskAPI/services"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	log               *slog.Logger
}

func NewAttendanceHandler(attendanceService *services.AttendanceService, log *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, log: log}
}

func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}
	if req.MemberCode == "" && req.MemberID == "" {
		respondError(w, h.log, apperr.Validation("either memberCode or memberId is required", nil))
		return
	}

	in := services.CheckInInput{MemberCode: req.MemberCode}
	if req.MemberID != "" {
		id, err := uuid.Parse(req.MemberID)
		if err != nil {
			respondError(w, h.log, apperr.Validation("invalid memberId", nil))
			return
		}
		in.MemberID = &id
	}
	if req.Notes != "" {
		in.Notes = &req.Notes
	}
	if staffID, ok := middleware.GetStaffID(ctx); ok {
		in.ProcessedBy = &staffID
	}

	resp, err := h.attendanceService.CheckIn(ctx, in)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, h.log, err)
		return
	}

	checkInID, err := uuid.Parse(req.CheckInID)
	if err != nil {
		respondError(w, h.log, apperr.Validation("invalid checkInId", nil))
		return
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	rec, err := h.attendanceService.CheckOut(ctx, checkInID, notes)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Check-out successful",
		"checkIn": rec,
	})
}

func (h *AttendanceHandler) Logs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := attendance.LogsQuery{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 10),
	}

	if v := r.URL.Query().Get("memberId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, h.log, apperr.Validation("invalid memberId", nil))
			return
		}
		q.MemberID = &id
	}
	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, h.log, apperr.Validation("invalid startDate", nil))
			return
		}
		q.StartDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, h.log, apperr.Validation("invalid endDate", nil))
			return
		}
		q.EndDate = &t
	}

	resp, err := h.attendanceService.Logs(ctx, q)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
