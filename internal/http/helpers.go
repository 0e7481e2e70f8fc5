package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondCoreError maps the core error taxonomy onto HTTP statuses. All of
// these are recoverable user-facing conditions except a corrupt snapshot.
func respondCoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidKind):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrCorruptSnapshot):
		slog.ErrorContext(r.Context(), "Corrupt snapshot", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "stored ledger data is corrupt")
	default:
		slog.ErrorContext(r.Context(), "Internal error", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
