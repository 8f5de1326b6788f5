package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction values recorded in the audit log. The set is open: rows written by
// older or newer builds may carry actions not listed here, and consumers must
// degrade gracefully instead of rejecting them.
const (
	AuditActionCreate         = "create"
	AuditActionUpdate         = "update"
	AuditActionDelete         = "delete"
	AuditActionLogin          = "login"
	AuditActionLogout         = "logout"
	AuditActionPasswordChange = "password_change"
)

// AuditLogEntry represents a single recorded administrative action.
// Stored in the admin_audit_log table. OldData/NewData are full row snapshots
// captured before and after the action; their shape is schema-driven and open,
// so they stay untyped maps rather than fixed record types.
type AuditLogEntry struct {
	ID        uuid.UUID  `json:"id"`
	AdminID   *uuid.UUID `json:"admin_id,omitempty"` // May be null for system operations
	Action    string     `json:"action"`
	TableName string     `json:"table_name"`
	RecordID  *string    `json:"record_id,omitempty"`

	OldData  map[string]any `json:"old_data,omitempty"` // Absent for create
	NewData  map[string]any `json:"new_data,omitempty"` // Absent for delete
	Metadata map[string]any `json:"metadata,omitempty"` // Free-form context: reason, ip, user agent

	// Optional pre-computed descriptions. When upstream already produced these,
	// consumers prefer them over recomputing from OldData/NewData.
	ChangeSummary *string       `json:"change_summary,omitempty"`
	FieldChanges  []FieldChange `json:"field_changes,omitempty"`
	ChangeContext *string       `json:"change_context,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FieldChange is one field's before/after value pair plus a human description.
type FieldChange struct {
	Field       string `json:"field"`
	Old         any    `json:"old"`
	New         any    `json:"new"`
	Description string `json:"description"`
}

// AuditLogFilters contains pagination and filter options for audit log queries.
type AuditLogFilters struct {
	Since     *time.Time
	Until     *time.Time
	AdminID   *uuid.UUID
	Action    string
	TableName string
	Limit     int
	Offset    int
}

// AuditSummary contains aggregate counts for the audit dashboard header.
type AuditSummary struct {
	TotalEvents    int `json:"total_events"`
	CreateCount    int `json:"create_count"`
	UpdateCount    int `json:"update_count"`
	DeleteCount    int `json:"delete_count"`
	AuthEventCount int `json:"auth_event_count"`
	DistinctAdmins int `json:"distinct_admins"`
}
