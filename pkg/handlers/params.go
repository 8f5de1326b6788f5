package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// ParseID extracts and validates the {id} path parameter as a UUID.
// Returns the parsed UUID and true on success, or uuid.Nil and false on error
// (after writing an error response).
func ParseID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Debug("Invalid ID in path", zap.String("id", idStr))
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}

// parseLimitOffset reads limit/offset query parameters with defaults.
func parseLimitOffset(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// parseAuditFilters reads the audit log filter query parameters.
func parseAuditFilters(r *http.Request) *models.AuditLogFilters {
	filters := &models.AuditLogFilters{}
	filters.Limit, filters.Offset = parseLimitOffset(r)

	if v := r.URL.Query().Get("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.Since = &t
		}
	}
	if v := r.URL.Query().Get("until"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.Until = &t
		}
	}
	if v := r.URL.Query().Get("admin_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filters.AdminID = &id
		}
	}
	filters.Action = r.URL.Query().Get("action")
	filters.TableName = r.URL.Query().Get("table")

	return filters
}
