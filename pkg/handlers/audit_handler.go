package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

const auditCachePrefix = "audit:list:"

// AuditHandler serves the audit log pages, timeline and CSV export.
type AuditHandler struct {
	auditService services.AuditService
	cache        *database.Cache
	logger       *zap.Logger
}

// NewAuditHandler creates a new audit handler. The cache may be nil.
func NewAuditHandler(auditService services.AuditService, cache *database.Cache, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		cache:        cache,
		logger:       logger,
	}
}

// RegisterRoutes registers the audit handler's routes on the given mux.
// The audit trail is restricted to admins and super admins.
func (h *AuditHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	requireAdmin := authMiddleware.RequireRole(models.RoleAdmin)

	mux.HandleFunc("GET /api/audit-log", requireAdmin(h.List))
	mux.HandleFunc("GET /api/audit-log/summary", requireAdmin(h.Summary))
	mux.HandleFunc("GET /api/audit-log/timeline", requireAdmin(h.Timeline))
	mux.HandleFunc("GET /api/audit-log/export", requireAdmin(h.Export))
}

// List handles GET /api/audit-log
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := parseAuditFilters(r)

	cacheKey := auditCachePrefix + r.URL.RawQuery
	var page services.AuditPage
	if h.cache.Get(r.Context(), cacheKey, &page) {
		h.writePage(w, &page)
		return
	}

	result, err := h.auditService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list audit log", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.cache.Set(r.Context(), cacheKey, result)
	h.writePage(w, result)
}

func (h *AuditHandler) writePage(w http.ResponseWriter, page *services.AuditPage) {
	events := page.Events
	if events == nil {
		events = make([]*services.AuditEvent, 0)
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: PaginatedResponse{
			Items:  events,
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Summary handles GET /api/audit-log/summary
func (h *AuditHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.auditService.Summary(r.Context(), parseAuditFilters(r))
	if err != nil {
		h.logger.Error("Failed to compute audit summary", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: summary}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Timeline handles GET /api/audit-log/timeline
func (h *AuditHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	groups, err := h.auditService.Timeline(r.Context(), parseAuditFilters(r), time.Now())
	if err != nil {
		h.logger.Error("Failed to build audit timeline", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: groups}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Export handles GET /api/audit-log/export
// Streams the filtered audit log as a CSV download.
func (h *AuditHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename, content, err := h.auditService.ExportCSV(r.Context(), parseAuditFilters(r), time.Now())
	if err != nil {
		h.logger.Error("Failed to export audit log", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write([]byte(content)); err != nil {
		h.logger.Error("Failed to write CSV response", zap.Error(err))
	}
}
