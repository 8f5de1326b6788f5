package audittrail

import (
	"strings"
	"time"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// csvColumns is the fixed export column set.
var csvColumns = []string{"Date/Time", "Action", "Table", "Record ID", "Description", "Reason"}

// ExportCSV serializes audit events into CSV text for download. Every cell is
// double-quoted with embedded quotes doubled, so summaries containing commas
// or quotes survive a round trip through any standard CSV parser. Timestamps
// are RFC 3339 (not the display format) to keep exports machine-sortable.
// Rows are newline-joined with no trailing blank row.
func ExportCSV(events []*models.AuditLogEntry) string {
	var b strings.Builder
	writeCSVRow(&b, csvColumns)

	for _, e := range events {
		if e == nil {
			continue
		}
		b.WriteByte('\n')
		writeCSVRow(&b, []string{
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Action,
			e.TableName,
			stringOrEmpty(e.RecordID),
			EntrySummary(e),
			metadataString(e.Metadata, "reason"),
		})
	}
	return b.String()
}

// ExportFilename builds the download filename from the subject's display name
// and the export date, e.g. "audit-log-jane-doe-2026-08-24.csv".
func ExportFilename(subject string, date time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(subject))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "all"
	}
	return "audit-log-" + slug + "-" + date.Format("2006-01-02") + ".csv"
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if s, ok := metadata[key].(string); ok {
		return s
	}
	return ""
}
