package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

// mockOrderRepository is an in-memory OrderRepository for testing.
type mockOrderRepository struct {
	orders map[uuid.UUID]*models.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*models.Order)}
}

func (m *mockOrderRepository) List(ctx context.Context, filters *repositories.OrderFilters) ([]*models.Order, int, error) {
	var result []*models.Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, len(result), nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	if _, ok := m.orders[order.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) RevenueBetween(ctx context.Context, since, until time.Time) (float64, error) {
	var total float64
	for _, o := range m.orders {
		if o.IsPaid && o.Status != models.OrderCancelled && !o.CreatedAt.Before(since) && !o.CreatedAt.After(until) {
			total += o.TotalAmount - o.DiscountAmount
		}
	}
	return total, nil
}

func (m *mockOrderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func TestOrderService_Create_DefaultsToPending(t *testing.T) {
	repo := newMockOrderRepository()
	audit := NewAuditService(&mockAuditRepository{}, newMockAdminRepository(), zap.NewNop())
	svc := NewOrderService(repo, audit, zap.NewNop())

	order := &models.Order{CustomerName: "Ana Cruz", PaymentMethod: models.PaymentGCash, TotalAmount: 2500}
	require.NoError(t, svc.Create(context.Background(), order))

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Len(t, repo.orders, 1)
}

func TestOrderService_Update_FrozenStatuses(t *testing.T) {
	for _, status := range []string{models.OrderDelivered, models.OrderCancelled} {
		t.Run(status, func(t *testing.T) {
			repo := newMockOrderRepository()
			audit := NewAuditService(&mockAuditRepository{}, newMockAdminRepository(), zap.NewNop())
			svc := NewOrderService(repo, audit, zap.NewNop())

			order := &models.Order{ID: uuid.New(), CustomerName: "Ana Cruz", Status: status}
			repo.orders[order.ID] = order

			edited := *order
			edited.TotalAmount = 999
			err := svc.Update(context.Background(), &edited)
			assert.ErrorIs(t, err, apperrors.ErrOrderNotEditable)
		})
	}
}

func TestOrderService_Update_Audited(t *testing.T) {
	repo := newMockOrderRepository()
	auditRepo := &mockAuditRepository{}
	audit := NewAuditService(auditRepo, newMockAdminRepository(), zap.NewNop())
	svc := NewOrderService(repo, audit, zap.NewNop())

	order := &models.Order{ID: uuid.New(), CustomerName: "Ana Cruz", Status: models.OrderPending, TotalAmount: 2500}
	repo.orders[order.ID] = order

	edited := *order
	edited.Status = models.OrderConfirmed
	require.NoError(t, svc.Update(context.Background(), &edited))

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	require.NotEmpty(t, entry.FieldChanges)
	assert.Equal(t, "status", entry.FieldChanges[0].Field)
	assert.Contains(t, entry.FieldChanges[0].Description, "Pending")
	assert.Contains(t, entry.FieldChanges[0].Description, "Confirmed")
}
