package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/audittrail"
	"github.com/frostline-foods/frostline-admin/pkg/llm"
	"github.com/frostline-foods/frostline-admin/pkg/retry"
)

const insightSystemMessage = `You are an operations analyst for a frozen food distribution business in the Philippines.
Given a snapshot of sales and inventory figures, write a short briefing (3-5 sentences) for the owner.
Be concrete: name the numbers, flag low stock risks, and suggest one action. Amounts are in Philippine pesos.`

const insightTemperature = 0.3

// Insight is an AI-generated operations briefing.
type Insight struct {
	Text        string    `json:"text"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

// InsightService turns dashboard aggregates into a natural-language briefing.
type InsightService interface {
	// Generate produces a briefing for the current dashboard snapshot.
	// Returns apperrors.ErrInsightsDisabled when no AI provider is configured.
	Generate(ctx context.Context) (*Insight, error)
}

type insightService struct {
	analytics AnalyticsService
	client    llm.Client
	logger    *zap.Logger
}

// NewInsightService creates a new insight service. The client may be nil when
// no AI provider is configured; Generate then reports insights as disabled.
func NewInsightService(analytics AnalyticsService, client llm.Client, logger *zap.Logger) InsightService {
	return &insightService{
		analytics: analytics,
		client:    client,
		logger:    logger.Named("insight"),
	}
}

var _ InsightService = (*insightService)(nil)

func (s *insightService) Generate(ctx context.Context) (*Insight, error) {
	if s.client == nil {
		return nil, apperrors.ErrInsightsDisabled
	}

	stats, err := s.analytics.Stats(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to gather stats for insight: %w", err)
	}

	prompt := buildInsightPrompt(stats)

	var text string
	err = retry.DoIfRetryable(ctx, retry.DefaultConfig(), func() error {
		var genErr error
		text, genErr = s.client.GenerateInsight(ctx, prompt, insightSystemMessage, insightTemperature)
		return genErr
	})
	if err != nil {
		s.logger.Error("Insight generation failed", zap.String("model", s.client.Model()), zap.Error(err))
		return nil, fmt.Errorf("failed to generate insight: %w", err)
	}

	return &Insight{
		Text:        strings.TrimSpace(text),
		Model:       s.client.Model(),
		GeneratedAt: time.Now(),
	}, nil
}

// buildInsightPrompt renders the stats snapshot as plain text. Peso figures use
// the compact display format so the model echoes amounts the dashboard shows.
func buildInsightPrompt(stats *DashboardStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Revenue today: %s\n", audittrail.FormatCurrencyCompact(stats.RevenueToday))
	fmt.Fprintf(&b, "Revenue this week: %s\n", audittrail.FormatCurrencyCompact(stats.RevenueThisWeek))
	fmt.Fprintf(&b, "Revenue this month: %s\n", audittrail.FormatCurrencyCompact(stats.RevenueThisMonth))

	if len(stats.OrdersByStatus) > 0 {
		statuses := make([]string, 0, len(stats.OrdersByStatus))
		for status := range stats.OrdersByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)

		b.WriteString("Orders by status:\n")
		for _, status := range statuses {
			fmt.Fprintf(&b, "  %s: %d\n", audittrail.EnumLabel("status", status), stats.OrdersByStatus[status])
		}
	}

	if len(stats.LowStockProducts) > 0 {
		b.WriteString("Products low on stock:\n")
		for _, p := range stats.LowStockProducts {
			fmt.Fprintf(&b, "  %s: %.1f kg left (threshold %.1f kg)\n", p.Name, p.StockLevel(), p.LowStockThreshold)
		}
	}

	fmt.Fprintf(&b, "Open inventory alerts: %d\n", stats.OpenAlertCount)

	return b.String()
}
