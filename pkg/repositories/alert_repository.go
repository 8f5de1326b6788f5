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

// AlertRepository defines the interface for inventory alert data access.
type AlertRepository interface {
	ListOpen(ctx context.Context) ([]*models.InventoryAlert, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryAlert, error)
	// GetOpenByProduct returns the unacknowledged alert of the given type for a
	// product, or apperrors.ErrNotFound. The sweep uses it to avoid duplicates.
	GetOpenByProduct(ctx context.Context, productID uuid.UUID, alertType string) (*models.InventoryAlert, error)
	Create(ctx context.Context, alert *models.InventoryAlert) error
	Acknowledge(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error
}

type alertRepository struct {
	db *database.DB
}

// NewAlertRepository creates a new alert repository.
func NewAlertRepository(db *database.DB) AlertRepository {
	return &alertRepository{db: db}
}

var _ AlertRepository = (*alertRepository)(nil)

const alertColumns = `id, product_id, alert_type, threshold, acknowledged, acknowledged_by, created_at, updated_at`

func (r *alertRepository) ListOpen(ctx context.Context) ([]*models.InventoryAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM inventory_alerts
		WHERE NOT acknowledged
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.InventoryAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return alerts, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM inventory_alerts WHERE id = $1`
	alert, err := scanAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

func (r *alertRepository) GetOpenByProduct(ctx context.Context, productID uuid.UUID, alertType string) (*models.InventoryAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM inventory_alerts
		WHERE product_id = $1 AND alert_type = $2 AND NOT acknowledged`

	alert, err := scanAlert(r.db.QueryRow(ctx, query, productID, alertType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open alert: %w", err)
	}
	return alert, nil
}

func (r *alertRepository) Create(ctx context.Context, alert *models.InventoryAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	now := time.Now()
	alert.CreatedAt = now
	alert.UpdatedAt = now

	query := `
		INSERT INTO inventory_alerts (id, product_id, alert_type, threshold, acknowledged, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		alert.ID,
		alert.ProductID,
		alert.AlertType,
		alert.Threshold,
		alert.Acknowledged,
		alert.CreatedAt,
		alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

func (r *alertRepository) Acknowledge(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error {
	query := `
		UPDATE inventory_alerts
		SET acknowledged = TRUE, acknowledged_by = $2, updated_at = $3
		WHERE id = $1 AND NOT acknowledged`

	tag, err := r.db.Exec(ctx, query, id, adminID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanAlert(row pgx.Row) (*models.InventoryAlert, error) {
	var a models.InventoryAlert
	err := row.Scan(
		&a.ID,
		&a.ProductID,
		&a.AlertType,
		&a.Threshold,
		&a.Acknowledged,
		&a.AcknowledgedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
