package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// AlertsHandler handles inventory alert HTTP requests.
type AlertsHandler struct {
	alertService services.AlertService
	logger       *zap.Logger
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(alertService services.AlertService, logger *zap.Logger) *AlertsHandler {
	return &AlertsHandler{
		alertService: alertService,
		logger:       logger,
	}
}

// RegisterRoutes registers the alerts handler's routes on the given mux.
func (h *AlertsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/alerts", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/alerts/{id}/acknowledge", authMiddleware.RequireAuth(h.Acknowledge))
	mux.HandleFunc("POST /api/alerts/sweep", authMiddleware.RequireRole(models.RoleAdmin)(h.Sweep))
}

// List handles GET /api/alerts
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertService.ListOpen(r.Context())
	if err != nil {
		h.logger.Error("Failed to list alerts", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if alerts == nil {
		alerts = make([]*models.InventoryAlert, 0)
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: alerts}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Acknowledge handles POST /api/alerts/{id}/acknowledge
func (h *AlertsHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.alertService.Acknowledge(r.Context(), id); err != nil {
		h.logger.Error("Failed to acknowledge alert", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Alert acknowledged"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Sweep handles POST /api/alerts/sweep
func (h *AlertsHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.alertService.Sweep(r.Context())
	if err != nil {
		h.logger.Error("Alert sweep failed", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
