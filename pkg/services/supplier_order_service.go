package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

const supplierOrdersTable = "supplier_orders"

// SupplierOrderService manages restocking orders. Marking an order delivered
// runs through the process_supplier_order_delivery database function so the
// status flip and stock adjustment stay atomic.
type SupplierOrderService interface {
	List(ctx context.Context, status string, limit, offset int) ([]*models.SupplierOrder, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
	Create(ctx context.Context, order *models.SupplierOrder) error
	Update(ctx context.Context, order *models.SupplierOrder) error
	// MarkDelivered processes the delivery and returns the updated order.
	// Returns apperrors.ErrAlreadyDelivered if it was already processed.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
}

type supplierOrderService struct {
	repo   repositories.SupplierOrderRepository
	rpc    *database.RPC
	audit  AuditService
	logger *zap.Logger
}

// NewSupplierOrderService creates a new supplier order service.
func NewSupplierOrderService(
	repo repositories.SupplierOrderRepository,
	rpc *database.RPC,
	audit AuditService,
	logger *zap.Logger,
) SupplierOrderService {
	return &supplierOrderService{
		repo:   repo,
		rpc:    rpc,
		audit:  audit,
		logger: logger.Named("supplier_orders"),
	}
}

var _ SupplierOrderService = (*supplierOrderService)(nil)

func (s *supplierOrderService) List(ctx context.Context, status string, limit, offset int) ([]*models.SupplierOrder, int, error) {
	return s.repo.List(ctx, status, limit, offset)
}

func (s *supplierOrderService) Get(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *supplierOrderService) Create(ctx context.Context, order *models.SupplierOrder) error {
	if order.Status == "" {
		order.Status = models.SupplierOrderPending
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}

	s.audit.LogCreate(ctx, supplierOrdersTable, order.ID.String(), Snapshot(order), nil)
	return nil
}

func (s *supplierOrderService) Update(ctx context.Context, order *models.SupplierOrder) error {
	existing, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}

	if existing.Status == models.SupplierOrderDelivered {
		return apperrors.ErrAlreadyDelivered
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return err
	}

	s.audit.LogUpdate(ctx, supplierOrdersTable, order.ID.String(), Snapshot(existing), Snapshot(order), nil)
	return nil
}

func (s *supplierOrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == models.SupplierOrderDelivered {
		return nil, apperrors.ErrAlreadyDelivered
	}

	start := time.Now()
	if err := s.rpc.ProcessSupplierOrderDelivery(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("Supplier delivery processed",
		zap.String("supplier_order_id", id.String()),
		zap.Duration("took", time.Since(start)))

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.LogUpdate(ctx, supplierOrdersTable, id.String(), Snapshot(existing), Snapshot(updated), nil)
	return updated, nil
}
