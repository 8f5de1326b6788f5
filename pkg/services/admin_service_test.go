package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/models"
)

func newAdminServiceForTest(t *testing.T) (AdminService, *mockAdminRepository, *mockAuditRepository) {
	t.Helper()
	adminRepo := newMockAdminRepository()
	auditRepo := &mockAuditRepository{}
	audit := NewAuditService(auditRepo, adminRepo, zap.NewNop())
	svc := NewAdminService(adminRepo, nil, audit, zap.NewNop())
	return svc, adminRepo, auditRepo
}

func TestAdminService_Create(t *testing.T) {
	svc, adminRepo, auditRepo := newAdminServiceForTest(t)

	admin := &models.Admin{Email: "maria@frostline.ph", FullName: "Maria Santos", Role: models.RoleStaff, IsActive: true}
	require.NoError(t, svc.Create(context.Background(), admin))

	assert.Len(t, adminRepo.admins, 1)
	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, models.AuditActionCreate, entry.Action)
	require.NotNil(t, entry.ChangeSummary)
	assert.Equal(t, "Created new Staff account for Maria Santos", *entry.ChangeSummary)
}

func TestAdminService_Create_InvalidRole(t *testing.T) {
	svc, _, _ := newAdminServiceForTest(t)

	admin := &models.Admin{Email: "x@frostline.ph", FullName: "X", Role: "owner"}
	err := svc.Create(context.Background(), admin)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestAdminService_Update_LastSuperAdminGuard(t *testing.T) {
	svc, adminRepo, _ := newAdminServiceForTest(t)

	only := &models.Admin{ID: uuid.New(), Email: "boss@frostline.ph", FullName: "The Boss", Role: models.RoleSuperAdmin, IsActive: true}
	adminRepo.admins[only.ID] = only

	demoted := *only
	demoted.Role = models.RoleAdmin
	err := svc.Update(context.Background(), &demoted)
	assert.ErrorIs(t, err, apperrors.ErrLastSuperAdmin)

	deactivated := *only
	deactivated.IsActive = false
	err = svc.Update(context.Background(), &deactivated)
	assert.ErrorIs(t, err, apperrors.ErrLastSuperAdmin)
}

func TestAdminService_Update_AllowedWithSecondSuperAdmin(t *testing.T) {
	svc, adminRepo, auditRepo := newAdminServiceForTest(t)

	first := &models.Admin{ID: uuid.New(), Email: "a@frostline.ph", FullName: "A", Role: models.RoleSuperAdmin, IsActive: true}
	second := &models.Admin{ID: uuid.New(), Email: "b@frostline.ph", FullName: "B", Role: models.RoleSuperAdmin, IsActive: true}
	adminRepo.admins[first.ID] = first
	adminRepo.admins[second.ID] = second

	demoted := *first
	demoted.Role = models.RoleAdmin
	require.NoError(t, svc.Update(context.Background(), &demoted))

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	require.NotEmpty(t, entry.FieldChanges)
	assert.Equal(t, "role", entry.FieldChanges[0].Field)
	assert.Equal(t, "Role changed from Super Admin to Admin", entry.FieldChanges[0].Description)
}

func TestAdminService_Delete_LastSuperAdminGuard(t *testing.T) {
	svc, adminRepo, _ := newAdminServiceForTest(t)

	only := &models.Admin{ID: uuid.New(), Email: "boss@frostline.ph", FullName: "The Boss", Role: models.RoleSuperAdmin, IsActive: true}
	adminRepo.admins[only.ID] = only

	err := svc.Delete(context.Background(), only.ID)
	assert.ErrorIs(t, err, apperrors.ErrLastSuperAdmin)
	assert.Len(t, adminRepo.admins, 1)
}

func TestAdminService_Delete(t *testing.T) {
	svc, adminRepo, auditRepo := newAdminServiceForTest(t)

	staff := &models.Admin{ID: uuid.New(), Email: "s@frostline.ph", FullName: "Sam Reyes", Role: models.RoleStaff, IsActive: true}
	adminRepo.admins[staff.ID] = staff

	require.NoError(t, svc.Delete(context.Background(), staff.ID))
	assert.Empty(t, adminRepo.admins)

	require.Len(t, auditRepo.entries, 1)
	require.NotNil(t, auditRepo.entries[0].ChangeSummary)
	assert.Equal(t, "Deleted admin account for Sam Reyes", *auditRepo.entries[0].ChangeSummary)
}

func TestAdminService_Get_NotFound(t *testing.T) {
	svc, _, _ := newAdminServiceForTest(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdminService_RecordLogin(t *testing.T) {
	svc, adminRepo, auditRepo := newAdminServiceForTest(t)

	admin := &models.Admin{ID: uuid.New(), Email: "m@frostline.ph", FullName: "M", Role: models.RoleAdmin, IsActive: true}
	adminRepo.admins[admin.ID] = admin

	require.NoError(t, svc.RecordLogin(authedContext(admin.ID), admin.ID, map[string]any{"ip": "10.0.0.5"}))

	assert.NotNil(t, adminRepo.admins[admin.ID].LastLogin)
	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, models.AuditActionLogin, entry.Action)
	require.NotNil(t, entry.ChangeSummary)
	assert.Equal(t, "Logged in to the dashboard", *entry.ChangeSummary)
}
