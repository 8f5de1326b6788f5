package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

const adminsTable = "admins"

// AdminService manages administrator accounts. Mutations are audited; password
// and activation changes run through the database's stored functions.
type AdminService interface {
	List(ctx context.Context, limit, offset int) ([]*models.Admin, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ResetPassword sets a new password for the admin via the database function.
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error
	// ToggleStatus flips the admin's active flag and returns the new state.
	// Refuses to deactivate the last active super admin.
	ToggleStatus(ctx context.Context, id uuid.UUID) (bool, error)
	// RecordLogin stamps last_login and writes a login audit event.
	RecordLogin(ctx context.Context, id uuid.UUID, metadata map[string]any) error
	// RecordLogout writes a logout audit event.
	RecordLogout(ctx context.Context, metadata map[string]any)
}

type adminService struct {
	repo   repositories.AdminRepository
	rpc    *database.RPC
	audit  AuditService
	logger *zap.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(repo repositories.AdminRepository, rpc *database.RPC, audit AuditService, logger *zap.Logger) AdminService {
	return &adminService{
		repo:   repo,
		rpc:    rpc,
		audit:  audit,
		logger: logger.Named("admin"),
	}
}

var _ AdminService = (*adminService)(nil)

func (s *adminService) List(ctx context.Context, limit, offset int) ([]*models.Admin, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *adminService) Get(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *adminService) Create(ctx context.Context, admin *models.Admin) error {
	if !models.IsValidRole(admin.Role) {
		return apperrors.ErrInvalidRole
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}

	s.audit.LogCreate(ctx, adminsTable, admin.ID.String(), Snapshot(admin), nil)
	return nil
}

func (s *adminService) Update(ctx context.Context, admin *models.Admin) error {
	if !models.IsValidRole(admin.Role) {
		return apperrors.ErrInvalidRole
	}

	existing, err := s.repo.GetByID(ctx, admin.ID)
	if err != nil {
		return err
	}

	// Demoting or deactivating the last active super admin would lock
	// everyone out of admin management.
	losesSuperAdmin := existing.Role == models.RoleSuperAdmin && existing.IsActive &&
		(admin.Role != models.RoleSuperAdmin || !admin.IsActive)
	if losesSuperAdmin {
		count, err := s.repo.CountActiveSuperAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperrors.ErrLastSuperAdmin
		}
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		return err
	}

	s.audit.LogUpdate(ctx, adminsTable, admin.ID.String(), Snapshot(existing), Snapshot(admin), nil)
	return nil
}

func (s *adminService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Role == models.RoleSuperAdmin && existing.IsActive {
		count, err := s.repo.CountActiveSuperAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperrors.ErrLastSuperAdmin
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.LogDelete(ctx, adminsTable, id.String(), Snapshot(existing), nil)
	return nil
}

func (s *adminService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.rpc.ResetAdminPassword(ctx, id, newPassword); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	// The password itself never enters the audit trail, only the fact that
	// it changed and for whom.
	s.audit.LogAuth(ctx, models.AuditActionPasswordChange, map[string]any{
		"target_admin_id": id.String(),
	})
	return nil
}

func (s *adminService) ToggleStatus(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if existing.Role == models.RoleSuperAdmin && existing.IsActive {
		count, err := s.repo.CountActiveSuperAdmins(ctx)
		if err != nil {
			return false, err
		}
		if count <= 1 {
			return false, apperrors.ErrLastSuperAdmin
		}
	}

	active, err := s.rpc.ToggleAdminStatus(ctx, id)
	if err != nil {
		return false, err
	}

	updated := *existing
	updated.IsActive = active
	s.audit.LogUpdate(ctx, adminsTable, id.String(), Snapshot(existing), Snapshot(&updated), nil)

	return active, nil
}

func (s *adminService) RecordLogin(ctx context.Context, id uuid.UUID, metadata map[string]any) error {
	if err := s.repo.UpdateLastLogin(ctx, id, time.Now()); err != nil {
		s.logger.Warn("Failed to stamp last login", zap.String("admin_id", id.String()), zap.Error(err))
	}
	s.audit.LogAuth(ctx, models.AuditActionLogin, metadata)
	return nil
}

func (s *adminService) RecordLogout(ctx context.Context, metadata map[string]any) {
	s.audit.LogAuth(ctx, models.AuditActionLogout, metadata)
}
