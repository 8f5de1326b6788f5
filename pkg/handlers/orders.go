package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// OrdersHandler handles customer order HTTP requests.
type OrdersHandler struct {
	orderService services.OrderService
	logger       *zap.Logger
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(orderService services.OrderService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers the orders handler's routes on the given mux.
func (h *OrdersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/orders", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/orders/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/orders", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /api/orders/{id}", authMiddleware.RequireAuth(h.Update))
}

// List handles GET /api/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &repositories.OrderFilters{
		Status:        r.URL.Query().Get("status"),
		PaymentMethod: r.URL.Query().Get("payment_method"),
	}
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

	orders, total, err := h.orderService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if orders == nil {
		orders = make([]*models.Order, 0)
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: PaginatedResponse{
			Items:  orders,
			Total:  total,
			Limit:  filters.Limit,
			Offset: filters.Offset,
		},
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/orders/{id}
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
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

// Create handles POST /api/orders
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.orderService.Create(r.Context(), &order); err != nil {
		h.logger.Error("Failed to create order", zap.Error(err))
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

// Update handles PUT /api/orders/{id}
func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	order.ID = id

	if err := h.orderService.Update(r.Context(), &order); err != nil {
		h.logger.Error("Failed to update order", zap.Error(err))
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
