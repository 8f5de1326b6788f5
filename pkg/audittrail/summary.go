package audittrail

import (
	"fmt"
	"strings"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// adminsTable is the table whose events get person-centric wording.
const adminsTable = "admins"

// Summarize produces the one-sentence description of an audit event. It never
// fails: unknown actions fall through to a generic "Performed X on Y" sentence
// so the action set stays open for future builds.
func Summarize(action, tableName string, before, after map[string]any) string {
	switch action {
	case models.AuditActionCreate:
		if tableName == adminsTable {
			if name := snapshotString(after, "full_name"); name != "" {
				return fmt.Sprintf("Created new %s account for %s",
					RoleLabel(snapshotString(after, "role")), name)
			}
		}
		return "Created new " + entityName(tableName)

	case models.AuditActionUpdate:
		if tableName == adminsTable {
			// Prefer the new name; fall back to the old one when the name
			// itself was not part of this update.
			name := snapshotString(after, "full_name")
			if name == "" {
				name = snapshotString(before, "full_name")
			}
			if name != "" {
				return "Updated admin account for " + name
			}
		}
		return "Updated " + entityName(tableName)

	case models.AuditActionDelete:
		if tableName == adminsTable {
			if name := snapshotString(before, "full_name"); name != "" {
				return "Deleted admin account for " + name
			}
		}
		return "Deleted " + entityName(tableName)

	case models.AuditActionLogin:
		return "Logged in to the dashboard"
	case models.AuditActionLogout:
		return "Logged out of the dashboard"
	case models.AuditActionPasswordChange:
		return "Changed account password"

	default:
		return fmt.Sprintf("Performed %s on %s", action, entityName(tableName))
	}
}

// EntrySummary returns the display description for an audit entry, preferring
// the stored change_summary over recomputation.
func EntrySummary(e *models.AuditLogEntry) string {
	if e == nil {
		return notAvailable
	}
	if e.ChangeSummary != nil && *e.ChangeSummary != "" {
		return *e.ChangeSummary
	}
	return Summarize(e.Action, e.TableName, e.OldData, e.NewData)
}

// entityName humanizes a table name for use in a sentence: "supplier_orders"
// becomes "supplier orders". The table name is kept as-is otherwise, so
// unknown tables read naturally without a lookup.
func entityName(tableName string) string {
	return strings.ToLower(strings.ReplaceAll(tableName, "_", " "))
}

func snapshotString(snapshot map[string]any, key string) string {
	if snapshot == nil {
		return ""
	}
	if s, ok := snapshot[key].(string); ok {
		return s
	}
	return ""
}
