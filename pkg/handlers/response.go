package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
)

// ApiResponse is the standard envelope for all JSON endpoints.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// PaginatedResponse wraps a page of items with pagination metadata.
type PaginatedResponse struct {
	Items  any `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// serviceError maps well-known service errors to their HTTP status and error
// code. Everything unrecognized is a 500.
func serviceError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apperrors.ErrInvalidRole):
		return http.StatusBadRequest, "invalid_role"
	case errors.Is(err, apperrors.ErrLastSuperAdmin):
		return http.StatusConflict, "last_super_admin"
	case errors.Is(err, apperrors.ErrOrderNotEditable):
		return http.StatusConflict, "order_not_editable"
	case errors.Is(err, apperrors.ErrAlreadyDelivered):
		return http.StatusConflict, "already_delivered"
	case errors.Is(err, apperrors.ErrInsightsDisabled):
		return http.StatusServiceUnavailable, "insights_disabled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
