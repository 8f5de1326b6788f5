package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

const ordersTable = "orders"

// OrderService manages customer orders. Delivered and cancelled orders are
// frozen: further edits return apperrors.ErrOrderNotEditable.
type OrderService interface {
	List(ctx context.Context, filters *repositories.OrderFilters) ([]*models.Order, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
}

type orderService struct {
	repo   repositories.OrderRepository
	audit  AuditService
	logger *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repositories.OrderRepository, audit AuditService, logger *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		audit:  audit,
		logger: logger.Named("orders"),
	}
}

var _ OrderService = (*orderService)(nil)

func (s *orderService) List(ctx context.Context, filters *repositories.OrderFilters) ([]*models.Order, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *orderService) Create(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}

	s.audit.LogCreate(ctx, ordersTable, order.ID.String(), Snapshot(order), nil)
	return nil
}

func (s *orderService) Update(ctx context.Context, order *models.Order) error {
	existing, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}

	if existing.Status == models.OrderDelivered || existing.Status == models.OrderCancelled {
		return apperrors.ErrOrderNotEditable
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return err
	}

	s.audit.LogUpdate(ctx, ordersTable, order.ID.String(), Snapshot(existing), Snapshot(order), nil)
	return nil
}
