package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

type stubVerifier struct {
	claims *Claims
	err    error
}

func (s *stubVerifier) ValidateToken(tokenString string) (*Claims, error) {
	return s.claims, s.err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := NewMiddleware(&stubVerifier{}, zap.NewNop())

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m := NewMiddleware(&stubVerifier{err: errors.New("expired")}, zap.NewNop())

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "8a7b29d4-4a45-4c16-9a5e-1f2e3d4c5b6a"},
		Email:            "jane@frostline.ph",
		Role:             models.RoleStaff,
	}
	m := NewMiddleware(&stubVerifier{claims: claims}, zap.NewNop())

	var gotClaims *Claims
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "jane@frostline.ph", gotClaims.Email)

	id := AdminIDFromContext(req.Context())
	assert.Nil(t, id, "original request context should not carry claims")
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"staff denied admin route", models.RoleStaff, []string{models.RoleAdmin}, http.StatusForbidden},
		{"admin allowed", models.RoleAdmin, []string{models.RoleAdmin}, http.StatusOK},
		{"super admin always allowed", models.RoleSuperAdmin, []string{models.RoleAdmin}, http.StatusOK},
		{"staff allowed on staff route", models.RoleStaff, []string{models.RoleStaff, models.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: uuidString},
				Role:             tt.role,
			}
			m := NewMiddleware(&stubVerifier{claims: claims}, zap.NewNop())

			handler := m.RequireRole(tt.allowed...)(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/admins/x", nil)
			req.Header.Set("Authorization", "Bearer token")
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

const uuidString = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func TestAdminIDFromContext(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuidString},
		Role:             models.RoleAdmin,
	}
	m := NewMiddleware(&stubVerifier{claims: claims}, zap.NewNop())

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		id := AdminIDFromContext(r.Context())
		require.NotNil(t, id)
		assert.Equal(t, uuidString, id.String())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/audit-log", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminIDFromContext_NonUUIDSubject(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "service-account"}}
	m := NewMiddleware(&stubVerifier{claims: claims}, zap.NewNop())

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, AdminIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/audit-log", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
