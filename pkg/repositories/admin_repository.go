package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// AdminRepository defines the interface for admin account data access.
type AdminRepository interface {
	List(ctx context.Context, limit, offset int) ([]*models.Admin, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountActiveSuperAdmins returns the number of active super admin accounts.
	// Used to block deactivating or deleting the last one.
	CountActiveSuperAdmins(ctx context.Context) (int, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type adminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(db *database.DB) AdminRepository {
	return &adminRepository{db: db}
}

var _ AdminRepository = (*adminRepository)(nil)

const adminColumns = `id, email, full_name, role, branches, is_active, last_login, created_at, updated_at`

func (r *adminRepository) List(ctx context.Context, limit, offset int) ([]*models.Admin, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count admins: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + adminColumns + `
		FROM admins
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []*models.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, 0, err
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating admins: %w", err)
	}

	return admins, total, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query := `
		INSERT INTO admins (id, email, full_name, role, branches, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.FullName,
		admin.Role,
		admin.Branches,
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *adminRepository) Update(ctx context.Context, admin *models.Admin) error {
	admin.UpdatedAt = time.Now()

	query := `
		UPDATE admins
		SET email = $2, full_name = $3, role = $4, branches = $5, is_active = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.FullName,
		admin.Role,
		admin.Branches,
		admin.IsActive,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *adminRepository) CountActiveSuperAdmins(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM admins WHERE role = $1 AND is_active`
	if err := r.db.QueryRow(ctx, query, models.RoleSuperAdmin).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count super admins: %w", err)
	}
	return count, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE admins SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var admin models.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.FullName,
		&admin.Role,
		&admin.Branches,
		&admin.IsActive,
		&admin.LastLogin,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
