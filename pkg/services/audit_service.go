package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/audittrail"
	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

// AuditEvent is an audit log entry enriched with its display summary and
// field-level changes. Stored values are preferred; both are recomputed from
// the row snapshots only when the writer did not record them.
type AuditEvent struct {
	*models.AuditLogEntry
	Summary string               `json:"summary"`
	Changes []models.FieldChange `json:"changes,omitempty"`
}

// AuditPage is one page of audit events plus the unpaginated total.
type AuditPage struct {
	Events []*AuditEvent `json:"events"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// AuditService records administrative actions and serves the audit timeline.
// Recording is best-effort: a failed audit write is logged but never fails the
// operation being audited.
type AuditService interface {
	LogCreate(ctx context.Context, tableName, recordID string, newData, metadata map[string]any)
	LogUpdate(ctx context.Context, tableName, recordID string, oldData, newData, metadata map[string]any)
	LogDelete(ctx context.Context, tableName, recordID string, oldData, metadata map[string]any)
	// LogAuth records an authentication event (login, logout, password_change).
	LogAuth(ctx context.Context, action string, metadata map[string]any)

	List(ctx context.Context, filters *models.AuditLogFilters) (*AuditPage, error)
	Timeline(ctx context.Context, filters *models.AuditLogFilters, now time.Time) ([]audittrail.TimelineGroup, error)
	// ExportCSV renders the filtered events as a CSV document and returns the
	// suggested download filename alongside it.
	ExportCSV(ctx context.Context, filters *models.AuditLogFilters, now time.Time) (filename, content string, err error)
	Summary(ctx context.Context, filters *models.AuditLogFilters) (*models.AuditSummary, error)
}

type auditService struct {
	repo      repositories.AuditRepository
	adminRepo repositories.AdminRepository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repositories.AuditRepository, adminRepo repositories.AdminRepository, logger *zap.Logger) AuditService {
	return &auditService{
		repo:      repo,
		adminRepo: adminRepo,
		logger:    logger.Named("audit"),
	}
}

var _ AuditService = (*auditService)(nil)

func (s *auditService) LogCreate(ctx context.Context, tableName, recordID string, newData, metadata map[string]any) {
	s.record(ctx, &models.AuditLogEntry{
		Action:    models.AuditActionCreate,
		TableName: tableName,
		RecordID:  optional(recordID),
		NewData:   newData,
		Metadata:  metadata,
	})
}

func (s *auditService) LogUpdate(ctx context.Context, tableName, recordID string, oldData, newData, metadata map[string]any) {
	s.record(ctx, &models.AuditLogEntry{
		Action:    models.AuditActionUpdate,
		TableName: tableName,
		RecordID:  optional(recordID),
		OldData:   oldData,
		NewData:   newData,
		Metadata:  metadata,
	})
}

func (s *auditService) LogDelete(ctx context.Context, tableName, recordID string, oldData, metadata map[string]any) {
	s.record(ctx, &models.AuditLogEntry{
		Action:    models.AuditActionDelete,
		TableName: tableName,
		RecordID:  optional(recordID),
		OldData:   oldData,
		Metadata:  metadata,
	})
}

func (s *auditService) LogAuth(ctx context.Context, action string, metadata map[string]any) {
	s.record(ctx, &models.AuditLogEntry{
		Action:    action,
		TableName: "admins",
		Metadata:  metadata,
	})
}

// record computes the summary and field changes up front, then inserts the
// entry. Failures are logged and swallowed so auditing never breaks the
// operation it describes.
func (s *auditService) record(ctx context.Context, entry *models.AuditLogEntry) {
	entry.AdminID = auth.AdminIDFromContext(ctx)

	summary := audittrail.Summarize(entry.Action, entry.TableName, entry.OldData, entry.NewData)
	entry.ChangeSummary = &summary
	entry.FieldChanges = audittrail.Changes(entry.OldData, entry.NewData)

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to record audit event",
			zap.String("action", entry.Action),
			zap.String("table", entry.TableName),
			zap.Error(err))
	}
}

func (s *auditService) List(ctx context.Context, filters *models.AuditLogFilters) (*AuditPage, error) {
	entries, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	events := make([]*AuditEvent, 0, len(entries))
	for _, entry := range entries {
		events = append(events, enrich(entry))
	}

	return &AuditPage{
		Events: events,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *auditService) Timeline(ctx context.Context, filters *models.AuditLogFilters, now time.Time) ([]audittrail.TimelineGroup, error) {
	entries, _, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return audittrail.GroupByTime(entries, now), nil
}

func (s *auditService) ExportCSV(ctx context.Context, filters *models.AuditLogFilters, now time.Time) (string, string, error) {
	entries, _, err := s.repo.List(ctx, filters)
	if err != nil {
		return "", "", err
	}

	subject := "all"
	if filters.AdminID != nil {
		if admin, err := s.adminRepo.GetByID(ctx, *filters.AdminID); err == nil {
			subject = admin.FullName
		}
	}

	return audittrail.ExportFilename(subject, now), audittrail.ExportCSV(entries), nil
}

func (s *auditService) Summary(ctx context.Context, filters *models.AuditLogFilters) (*models.AuditSummary, error) {
	return s.repo.Summary(ctx, filters)
}

func enrich(entry *models.AuditLogEntry) *AuditEvent {
	return &AuditEvent{
		AuditLogEntry: entry,
		Summary:       audittrail.EntrySummary(entry),
		Changes:       audittrail.EntryChanges(entry),
	}
}

// Snapshot converts a model into the untyped map shape the differ works on,
// going through JSON so field names match their wire/database form.
func Snapshot(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
