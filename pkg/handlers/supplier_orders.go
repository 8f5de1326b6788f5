package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// SupplierOrdersHandler handles supplier restocking order HTTP requests.
type SupplierOrdersHandler struct {
	supplierOrderService services.SupplierOrderService
	logger               *zap.Logger
}

// NewSupplierOrdersHandler creates a new supplier orders handler.
func NewSupplierOrdersHandler(supplierOrderService services.SupplierOrderService, logger *zap.Logger) *SupplierOrdersHandler {
	return &SupplierOrdersHandler{
		supplierOrderService: supplierOrderService,
		logger:               logger,
	}
}

// RegisterRoutes registers the supplier orders handler's routes on the given mux.
// Supplier orders are admin-only.
func (h *SupplierOrdersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	requireAdmin := authMiddleware.RequireRole(models.RoleAdmin)

	mux.HandleFunc("GET /api/supplier-orders", requireAdmin(h.List))
	mux.HandleFunc("GET /api/supplier-orders/{id}", requireAdmin(h.Get))
	mux.HandleFunc("POST /api/supplier-orders", requireAdmin(h.Create))
	mux.HandleFunc("PUT /api/supplier-orders/{id}", requireAdmin(h.Update))
	mux.HandleFunc("POST /api/supplier-orders/{id}/deliver", requireAdmin(h.MarkDelivered))
}

// List handles GET /api/supplier-orders
func (h *SupplierOrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)

	orders, total, err := h.supplierOrderService.List(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list supplier orders", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if orders == nil {
		orders = make([]*models.SupplierOrder, 0)
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: PaginatedResponse{
			Items:  orders,
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/supplier-orders/{id}
func (h *SupplierOrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.supplierOrderService.Get(r.Context(), id)
	if err != nil {
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/supplier-orders
func (h *SupplierOrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order models.SupplierOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.supplierOrderService.Create(r.Context(), &order); err != nil {
		h.logger.Error("Failed to create supplier order", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: order}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/supplier-orders/{id}
func (h *SupplierOrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var order models.SupplierOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	order.ID = id

	if err := h.supplierOrderService.Update(r.Context(), &order); err != nil {
		h.logger.Error("Failed to update supplier order", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// MarkDelivered handles POST /api/supplier-orders/{id}/deliver
func (h *SupplierOrdersHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.supplierOrderService.MarkDelivered(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to process supplier delivery", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
