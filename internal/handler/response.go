package handler

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error   string        `json:"error"`
	Details []fieldDetail `json:"details,omitempty"`
}

type fieldDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeValidationError(w http.ResponseWriter, details []fieldDetail) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:   "validation failed",
		Details: details,
	})
}
