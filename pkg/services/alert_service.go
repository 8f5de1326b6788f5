package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

const alertsTable = "inventory_alerts"

// SweepResult reports what an alert sweep found and created.
type SweepResult struct {
	Checked int    `json:"checked"`
	Created int    `json:"created"`
	Message string `json:"message"`
}

// AlertService raises and resolves inventory alerts.
type AlertService interface {
	ListOpen(ctx context.Context) ([]*models.InventoryAlert, error)
	// Acknowledge marks an alert handled by the authenticated admin.
	Acknowledge(ctx context.Context, id uuid.UUID) error
	// Sweep scans active products and raises alerts for any at or below their
	// low stock threshold. Existing open alerts are not duplicated.
	Sweep(ctx context.Context) (*SweepResult, error)
}

type alertService struct {
	alerts   repositories.AlertRepository
	products repositories.ProductRepository
	audit    AuditService
	logger   *zap.Logger
}

// NewAlertService creates a new alert service.
func NewAlertService(
	alerts repositories.AlertRepository,
	products repositories.ProductRepository,
	audit AuditService,
	logger *zap.Logger,
) AlertService {
	return &alertService{
		alerts:   alerts,
		products: products,
		audit:    audit,
		logger:   logger.Named("alerts"),
	}
}

var _ AlertService = (*alertService)(nil)

func (s *alertService) ListOpen(ctx context.Context) ([]*models.InventoryAlert, error) {
	return s.alerts.ListOpen(ctx)
}

func (s *alertService) Acknowledge(ctx context.Context, id uuid.UUID) error {
	adminID := auth.AdminIDFromContext(ctx)
	if adminID == nil {
		return apperrors.ErrNotFound
	}

	before, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.alerts.Acknowledge(ctx, id, *adminID); err != nil {
		return err
	}

	after := *before
	after.Acknowledged = true
	after.AcknowledgedBy = adminID
	s.audit.LogUpdate(ctx, alertsTable, id.String(), Snapshot(before), Snapshot(&after), nil)

	return nil
}

func (s *alertService) Sweep(ctx context.Context) (*SweepResult, error) {
	low, err := s.products.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, product := range low {
		alertType := models.AlertLowStock
		if product.StockLevel() <= 0 {
			alertType = models.AlertOutOfStock
		}

		_, err := s.alerts.GetOpenByProduct(ctx, product.ID, alertType)
		if err == nil {
			continue // already flagged
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		alert := &models.InventoryAlert{
			ProductID: product.ID,
			AlertType: alertType,
			Threshold: product.LowStockThreshold,
		}
		if err := s.alerts.Create(ctx, alert); err != nil {
			return nil, err
		}

		s.audit.LogCreate(ctx, alertsTable, alert.ID.String(), Snapshot(alert), map[string]any{
			"product_name": product.Name,
		})
		created++
	}

	result := &SweepResult{
		Checked: len(low),
		Created: created,
		Message: sweepMessage(len(low)),
	}
	s.logger.Info("Alert sweep finished",
		zap.Int("checked", result.Checked),
		zap.Int("created", result.Created))

	return result, nil
}

func sweepMessage(count int) string {
	if count == 0 {
		return "All products are above their stock thresholds"
	}
	noun := "product"
	if count != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s at or below stock threshold", count, noun)
}
