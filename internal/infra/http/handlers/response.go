package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/lead-magnet/internal/usecase"
)

type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Field   string               `json:"field,omitempty"`
	Session *usecase.SessionView `json:"session,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
