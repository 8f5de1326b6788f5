package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

// DashboardStats is the aggregate snapshot rendered on the dashboard home.
type DashboardStats struct {
	RevenueToday     float64           `json:"revenue_today"`
	RevenueThisWeek  float64           `json:"revenue_this_week"`
	RevenueThisMonth float64           `json:"revenue_this_month"`
	OrdersByStatus   map[string]int    `json:"orders_by_status"`
	LowStockProducts []*models.Product `json:"low_stock_products"`
	OpenAlertCount   int               `json:"open_alert_count"`
}

// AnalyticsService computes dashboard aggregates.
type AnalyticsService interface {
	// Stats computes the dashboard snapshot relative to now.
	Stats(ctx context.Context, now time.Time) (*DashboardStats, error)
}

type analyticsService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	alerts   repositories.AlertRepository
	logger   *zap.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	alerts repositories.AlertRepository,
	logger *zap.Logger,
) AnalyticsService {
	return &analyticsService{
		orders:   orders,
		products: products,
		alerts:   alerts,
		logger:   logger.Named("analytics"),
	}
}

var _ AnalyticsService = (*analyticsService)(nil)

func (s *analyticsService) Stats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenueToday, err := s.orders.RevenueBetween(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	revenueWeek, err := s.orders.RevenueBetween(ctx, weekStart, now)
	if err != nil {
		return nil, err
	}
	revenueMonth, err := s.orders.RevenueBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.products.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}

	openAlerts, err := s.alerts.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		RevenueToday:     revenueToday,
		RevenueThisWeek:  revenueWeek,
		RevenueThisMonth: revenueMonth,
		OrdersByStatus:   byStatus,
		LowStockProducts: lowStock,
		OpenAlertCount:   len(openAlerts),
	}, nil
}
