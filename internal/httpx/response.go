// Package httpx holds small helpers for writing JSON responses and
// mapping domain errors to HTTP status codes at the request boundary.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Error classifies err through the apperr sentinels and writes the
// matching status. Unclassified errors become opaque 500s so storage
// details never leak to clients.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperr.ErrValidation):
		JSONError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperr.ErrPolicyViolation):
		JSONError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, apperr.ErrAuthorization):
		JSONError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, apperr.ErrTokenExpired):
		JSONError(w, http.StatusGone, err.Error(), nil)
	case errors.Is(err, apperr.ErrConflict):
		JSONError(w, http.StatusConflict, err.Error(), nil)
	default:
		JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
