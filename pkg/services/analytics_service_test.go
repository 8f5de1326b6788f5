package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

func TestAnalyticsService_Stats(t *testing.T) {
	orders := newMockOrderRepository()
	products := newMockProductRepository()
	alerts := newMockAlertRepository()

	now := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	paidToday := &models.Order{ID: uuid.New(), Status: models.OrderDelivered, TotalAmount: 3000, DiscountAmount: 500, IsPaid: true, CreatedAt: now.Add(-2 * time.Hour)}
	unpaid := &models.Order{ID: uuid.New(), Status: models.OrderPending, TotalAmount: 1000, CreatedAt: now.Add(-1 * time.Hour)}
	paidLastMonth := &models.Order{ID: uuid.New(), Status: models.OrderDelivered, TotalAmount: 2000, IsPaid: true, CreatedAt: now.AddDate(0, 0, -30)}
	orders.orders[paidToday.ID] = paidToday
	orders.orders[unpaid.ID] = unpaid
	orders.orders[paidLastMonth.ID] = paidLastMonth

	low := lowStockProduct("Bangus Belly", 5)
	products.products[low.ID] = low

	alerts.alerts[uuid.New()] = &models.InventoryAlert{ID: uuid.New(), ProductID: low.ID, AlertType: models.AlertLowStock}

	svc := NewAnalyticsService(orders, products, alerts, zap.NewNop())
	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2500.0, stats.RevenueToday, "paid minus discount, unpaid excluded")
	assert.Equal(t, 2500.0, stats.RevenueThisWeek)
	assert.Equal(t, 2500.0, stats.RevenueThisMonth, "July order excluded")
	assert.Equal(t, map[string]int{"delivered": 2, "pending": 1}, stats.OrdersByStatus)
	require.Len(t, stats.LowStockProducts, 1)
	assert.Equal(t, "Bangus Belly", stats.LowStockProducts[0].Name)
	assert.Equal(t, 1, stats.OpenAlertCount)
}
