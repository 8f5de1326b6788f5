package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// ProductsHandler handles product catalog HTTP requests.
type ProductsHandler struct {
	productService services.ProductService
	logger         *zap.Logger
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(productService services.ProductService, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the products handler's routes on the given mux.
// Reads are open to all staff; mutations require the admin role.
func (h *ProductsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	requireAdmin := authMiddleware.RequireRole(models.RoleAdmin)

	mux.HandleFunc("GET /api/products", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/products/{id}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/products", requireAdmin(h.Create))
	mux.HandleFunc("PUT /api/products/{id}", requireAdmin(h.Update))
	mux.HandleFunc("DELETE /api/products/{id}", requireAdmin(h.Delete))
}

// List handles GET /api/products
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &repositories.ProductFilters{
		Category:      r.URL.Query().Get("category"),
		ProductStatus: r.URL.Query().Get("status"),
		ActiveOnly:    r.URL.Query().Get("active") == "true",
	}
	filters.Limit, filters.Offset = parseLimitOffset(r)

	products, total, err := h.productService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if products == nil {
		products = make([]*models.Product, 0)
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: PaginatedResponse{
			Items:  products,
			Total:  total,
			Limit:  filters.Limit,
			Offset: filters.Offset,
		},
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/products/{id}
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: product}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/products
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.productService.Create(r.Context(), &product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: product}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/products/{id}
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	product.ID = id

	if err := h.productService.Update(r.Context(), &product); err != nil {
		h.logger.Error("Failed to update product", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: product}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/products/{id}
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Product deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
