package audittrail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

func entryAt(t time.Time) *models.AuditLogEntry {
	return &models.AuditLogEntry{Action: "update", TableName: "products", CreatedAt: t}
}

func TestGroupByTime_Buckets(t *testing.T) {
	// A Wednesday mid-month, so every bucket is reachable.
	now := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)

	events := []*models.AuditLogEntry{
		entryAt(now),                             // Today
		entryAt(now.Add(-2 * time.Hour)),         // Today
		entryAt(now.AddDate(0, 0, -1)),           // Yesterday
		entryAt(now.AddDate(0, 0, -3)),           // This Week
		entryAt(now.AddDate(0, 0, -10)),          // This Month (Aug 9)
		entryAt(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)), // Earlier
	}

	groups := GroupByTime(events, now)
	require.Len(t, groups, 5)

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{GroupToday, GroupYesterday, GroupThisWeek, GroupThisMonth, GroupEarlier}, labels)
	assert.Len(t, groups[0].Items, 2)
}

func TestGroupByTime_EmptyBucketsOmitted(t *testing.T) {
	now := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)
	events := []*models.AuditLogEntry{
		entryAt(now),
		entryAt(now.AddDate(0, 0, -10)),
	}

	groups := GroupByTime(events, now)
	require.Len(t, groups, 2)
	assert.Equal(t, GroupToday, groups[0].Label)
	assert.Equal(t, GroupThisMonth, groups[1].Label)
}

func TestGroupByTime_NoEventInTwoGroups(t *testing.T) {
	now := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)
	events := []*models.AuditLogEntry{
		entryAt(now),
		entryAt(now.AddDate(0, 0, -10)),
	}

	groups := GroupByTime(events, now)
	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	assert.Equal(t, len(events), total)
}

func TestGroupByTime_OrderPreservedWithinBucket(t *testing.T) {
	now := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)
	first := entryAt(now.Add(-1 * time.Hour))
	second := entryAt(now.Add(-2 * time.Hour))

	groups := GroupByTime([]*models.AuditLogEntry{first, second}, now)
	require.Len(t, groups, 1)
	assert.Same(t, first, groups[0].Items[0])
	assert.Same(t, second, groups[0].Items[1])
}

func TestGroupByTime_MonthBoundary(t *testing.T) {
	// Early in a month, a 10-day-old event belongs to the previous month and
	// must land in Earlier, not This Month.
	now := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)
	groups := GroupByTime([]*models.AuditLogEntry{entryAt(now.AddDate(0, 0, -10))}, now)
	require.Len(t, groups, 1)
	assert.Equal(t, GroupEarlier, groups[0].Label)
}

func TestGroupByTime_Empty(t *testing.T) {
	assert.Empty(t, GroupByTime(nil, time.Now()))
}
