package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// AuditRepository provides data access for the admin audit log.
type AuditRepository interface {
	// Create inserts a new audit log entry.
	Create(ctx context.Context, entry *models.AuditLogEntry) error

	// List returns audit log entries matching the filters, newest first,
	// together with the total count before pagination.
	List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLogEntry, int, error)

	// GetByID returns a single audit log entry.
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLogEntry, error)

	// Summary returns aggregate counts over the filtered window.
	Summary(ctx context.Context, filters *models.AuditLogFilters) (*models.AuditSummary, error)
}

type auditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *database.DB) AuditRepository {
	return &auditRepository{db: db}
}

var _ AuditRepository = (*auditRepository)(nil)

const auditColumns = `id, admin_id, action, table_name, record_id,
	old_data, new_data, metadata, change_summary, field_changes, change_context, created_at`

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	oldData, err := marshalJSONB(entry.OldData)
	if err != nil {
		return fmt.Errorf("failed to marshal old_data: %w", err)
	}
	newData, err := marshalJSONB(entry.NewData)
	if err != nil {
		return fmt.Errorf("failed to marshal new_data: %w", err)
	}
	metadata, err := marshalJSONB(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var fieldChanges []byte
	if len(entry.FieldChanges) > 0 {
		fieldChanges, err = json.Marshal(entry.FieldChanges)
		if err != nil {
			return fmt.Errorf("failed to marshal field_changes: %w", err)
		}
	}

	query := `
		INSERT INTO admin_audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(ctx, query,
		entry.ID,
		entry.AdminID,
		entry.Action,
		entry.TableName,
		entry.RecordID,
		oldData,
		newData,
		metadata,
		entry.ChangeSummary,
		fieldChanges,
		entry.ChangeContext,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

func (r *auditRepository) List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLogEntry, int, error) {
	where, args := auditFilterClause(filters)

	countQuery := `SELECT COUNT(*) FROM admin_audit_log` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit log entries: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filters.Offset)
	query := fmt.Sprintf(`
		SELECT `+auditColumns+`
		FROM admin_audit_log%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditLogEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit log entries: %w", err)
	}

	return entries, total, nil
}

func (r *auditRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM admin_audit_log
		WHERE id = $1`

	entry, err := scanAuditLogEntry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get audit log entry: %w", err)
	}

	return entry, nil
}

func (r *auditRepository) Summary(ctx context.Context, filters *models.AuditLogFilters) (*models.AuditSummary, error) {
	where, args := auditFilterClause(filters)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE action = 'create'),
			COUNT(*) FILTER (WHERE action = 'update'),
			COUNT(*) FILTER (WHERE action = 'delete'),
			COUNT(*) FILTER (WHERE action IN ('login', 'logout', 'password_change')),
			COUNT(DISTINCT admin_id)
		FROM admin_audit_log` + where

	var summary models.AuditSummary
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&summary.TotalEvents,
		&summary.CreateCount,
		&summary.UpdateCount,
		&summary.DeleteCount,
		&summary.AuthEventCount,
		&summary.DistinctAdmins,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit summary: %w", err)
	}

	return &summary, nil
}

// auditFilterClause builds the WHERE clause and positional args for the
// optional audit log filters. Returns an empty clause when no filter is set.
func auditFilterClause(filters *models.AuditLogFilters) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filters.Since != nil {
		add("created_at >= $%d", *filters.Since)
	}
	if filters.Until != nil {
		add("created_at <= $%d", *filters.Until)
	}
	if filters.AdminID != nil {
		add("admin_id = $%d", *filters.AdminID)
	}
	if filters.Action != "" {
		add("action = $%d", filters.Action)
	}
	if filters.TableName != "" {
		add("table_name = $%d", filters.TableName)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanAuditLogEntry(row pgx.Row) (*models.AuditLogEntry, error) {
	var entry models.AuditLogEntry
	var oldData, newData, metadata, fieldChanges []byte

	err := row.Scan(
		&entry.ID,
		&entry.AdminID,
		&entry.Action,
		&entry.TableName,
		&entry.RecordID,
		&oldData,
		&newData,
		&metadata,
		&entry.ChangeSummary,
		&fieldChanges,
		&entry.ChangeContext,
		&entry.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
	}

	if err := unmarshalJSONB(oldData, &entry.OldData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal old_data: %w", err)
	}
	if err := unmarshalJSONB(newData, &entry.NewData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal new_data: %w", err)
	}
	if err := unmarshalJSONB(metadata, &entry.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	if len(fieldChanges) > 0 && string(fieldChanges) != "null" {
		if err := json.Unmarshal(fieldChanges, &entry.FieldChanges); err != nil {
			return nil, fmt.Errorf("failed to unmarshal field_changes: %w", err)
		}
	}

	return &entry, nil
}

func marshalJSONB(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalJSONB(data []byte, target *map[string]any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, target)
}
