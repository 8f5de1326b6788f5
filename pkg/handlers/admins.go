package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// AdminsHandler handles admin account management HTTP requests.
type AdminsHandler struct {
	adminService services.AdminService
	logger       *zap.Logger
}

// NewAdminsHandler creates a new admins handler.
func NewAdminsHandler(adminService services.AdminService, logger *zap.Logger) *AdminsHandler {
	return &AdminsHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers the admins handler's routes on the given mux.
// Account management is super-admin only; session events just need a valid token.
func (h *AdminsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	requireSuperAdmin := authMiddleware.RequireRole(models.RoleSuperAdmin)

	mux.HandleFunc("GET /api/admins", requireSuperAdmin(h.List))
	mux.HandleFunc("GET /api/admins/{id}", requireSuperAdmin(h.Get))
	mux.HandleFunc("POST /api/admins", requireSuperAdmin(h.Create))
	mux.HandleFunc("PUT /api/admins/{id}", requireSuperAdmin(h.Update))
	mux.HandleFunc("DELETE /api/admins/{id}", requireSuperAdmin(h.Delete))
	mux.HandleFunc("POST /api/admins/{id}/reset-password", requireSuperAdmin(h.ResetPassword))
	mux.HandleFunc("POST /api/admins/{id}/toggle-status", requireSuperAdmin(h.ToggleStatus))

	mux.HandleFunc("POST /api/session/login", authMiddleware.RequireAuth(h.Login))
	mux.HandleFunc("POST /api/session/logout", authMiddleware.RequireAuth(h.Logout))
}

// List handles GET /api/admins
func (h *AdminsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)

	admins, total, err := h.adminService.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list admins", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if admins == nil {
		admins = make([]*models.Admin, 0)
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: PaginatedResponse{
			Items:  admins,
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/admins/{id}
func (h *AdminsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	admin, err := h.adminService.Get(r.Context(), id)
	if err != nil {
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: admin}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/admins
func (h *AdminsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var admin models.Admin
	if err := json.NewDecoder(r.Body).Decode(&admin); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.adminService.Create(r.Context(), &admin); err != nil {
		h.logger.Error("Failed to create admin", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: admin}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/admins/{id}
func (h *AdminsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var admin models.Admin
	if err := json.NewDecoder(r.Body).Decode(&admin); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	admin.ID = id

	if err := h.adminService.Update(r.Context(), &admin); err != nil {
		h.logger.Error("Failed to update admin", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: admin}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/admins/{id}
func (h *AdminsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.adminService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete admin", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Admin deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ResetPassword handles POST /api/admins/{id}/reset-password
func (h *AdminsHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if len(req.NewPassword) < 8 {
		if err := ErrorResponse(w, http.StatusBadRequest, "weak_password", "Password must be at least 8 characters"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.adminService.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		h.logger.Error("Failed to reset password", zap.String("admin_id", id.String()))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, "Password reset failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Password reset"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ToggleStatus handles POST /api/admins/{id}/toggle-status
func (h *AdminsHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, h.logger)
	if !ok {
		return
	}

	active, err := h.adminService.ToggleStatus(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to toggle admin status", zap.Error(err))
		status, code := serviceError(err)
		if err := ErrorResponse(w, status, code, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]bool{"is_active": active},
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Login handles POST /api/session/login
// The auth provider has already authenticated the user; this endpoint stamps
// last_login and records the audit event.
func (h *AdminsHandler) Login(w http.ResponseWriter, r *http.Request) {
	adminID := auth.AdminIDFromContext(r.Context())
	if adminID == nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Admin ID not found in token"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	metadata := map[string]any{
		"ip":         clientIP(r),
		"user_agent": r.UserAgent(),
	}
	if err := h.adminService.RecordLogin(r.Context(), *adminID, metadata); err != nil {
		h.logger.Error("Failed to record login", zap.Error(err))
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Logout handles POST /api/session/logout
func (h *AdminsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.adminService.RecordLogout(r.Context(), map[string]any{
		"ip":         clientIP(r),
		"user_agent": r.UserAgent(),
	})

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// clientIP returns the requester's address, preferring the proxy header.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
