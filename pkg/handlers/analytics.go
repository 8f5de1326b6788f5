package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// AnalyticsHandler serves dashboard aggregates and AI insights.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	insightService   services.InsightService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService services.AnalyticsService, insightService services.InsightService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		insightService:   insightService,
		logger:           logger,
	}
}

// RegisterRoutes registers the analytics handler's routes on the given mux.
func (h *AnalyticsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/analytics/dashboard", authMiddleware.RequireAuth(h.Dashboard))
	mux.HandleFunc("GET /api/analytics/insight", authMiddleware.RequireAuth(h.Insight))
}

// Dashboard handles GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.Stats(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("Failed to compute dashboard stats", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: stats}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Insight handles GET /api/analytics/insight
func (h *AnalyticsHandler) Insight(w http.ResponseWriter, r *http.Request) {
	insight, err := h.insightService.Generate(r.Context())
	if err != nil {
		h.logger.Error("Failed to generate insight", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: insight}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
