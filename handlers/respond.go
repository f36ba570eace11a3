package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gymDeskAPI/internal/apperr"
)

// errorEnvelope is the wire shape of every failure response.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorEnvelope{Error: message})
}

// respondError maps a service error onto the HTTP taxonomy. Internal errors
// are logged with their cause and reach the caller as a generic message.
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		log.Error("request failed", "err", e.Unwrap(), "message", e.Message)
		respondWithError(w, e.Status(), e.Message)
		return
	}
	respondWithJSON(w, e.Status(), errorEnvelope{Error: e.Message, Details: e.Details})
}
