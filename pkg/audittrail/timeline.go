package audittrail

import (
	"time"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// Timeline group labels, in the order they are emitted.
const (
	GroupToday     = "Today"
	GroupYesterday = "Yesterday"
	GroupThisWeek  = "This Week"
	GroupThisMonth = "This Month"
	GroupEarlier   = "Earlier"
)

// TimelineGroup is a time-bucketed collection of audit events for display.
type TimelineGroup struct {
	Label string                  `json:"label"`
	Items []*models.AuditLogEntry `json:"items"`
}

// GroupByTime buckets events into display windows relative to now. Events are
// expected newest-first; input order is preserved within each bucket. Empty
// buckets are omitted. "now" is a parameter, not wall clock, so the grouping
// is reproducible: callers pass time.Now() and recompute per render pass.
func GroupByTime(events []*models.AuditLogEntry, now time.Time) []TimelineGroup {
	buckets := map[string][]*models.AuditLogEntry{}
	for _, e := range events {
		if e == nil {
			continue
		}
		label := bucketLabel(e.CreatedAt, now)
		buckets[label] = append(buckets[label], e)
	}

	var groups []TimelineGroup
	for _, label := range []string{GroupToday, GroupYesterday, GroupThisWeek, GroupThisMonth, GroupEarlier} {
		if items := buckets[label]; len(items) > 0 {
			groups = append(groups, TimelineGroup{Label: label, Items: items})
		}
	}
	return groups
}

func bucketLabel(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case sameDay(t, now):
		return GroupToday
	case sameDay(t, now.AddDate(0, 0, -1)):
		return GroupYesterday
	case now.Sub(t) < 7*24*time.Hour && t.Before(now):
		return GroupThisWeek
	case t.Year() == now.Year() && t.Month() == now.Month():
		return GroupThisMonth
	default:
		return GroupEarlier
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
