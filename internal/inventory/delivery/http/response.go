package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// statusForError maps the core's tagged errors to HTTP status codes.
// This layer owns the mapping; the core never leaks transport concerns.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrMissingReturnDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrNoOp),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrConstraintViolation):
		return http.StatusConflict
	case domain.IsStorageError(err):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondDomainError sends an error response with the mapped status
func respondDomainError(w http.ResponseWriter, err error) {
	respondJSON(w, statusForError(err), Response{
		Success: false,
		Error:   err.Error(),
	})
}
