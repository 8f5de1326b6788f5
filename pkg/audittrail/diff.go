package audittrail

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// skipFields are infrastructure columns excluded from change computation
// regardless of whether they differ. They are bookkeeping, not business state.
var skipFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"user_id":    true,
}

// Changes compares two row snapshots and returns one FieldChange per field
// whose value differs. Either side missing yields an empty result: pure
// creates and deletes are described by Summarize instead.
//
// Results are ordered by field name so output is stable for identical input.
func Changes(before, after map[string]any) []models.FieldChange {
	if before == nil || after == nil {
		return nil
	}

	keys := make([]string, 0, len(before)+len(after))
	seen := make(map[string]bool, len(before)+len(after))
	for k := range before {
		if !skipFields[k] && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range after {
		if !skipFields[k] && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []models.FieldChange
	for _, k := range keys {
		oldVal, newVal := before[k], after[k]
		if deepEqual(oldVal, newVal) {
			continue
		}
		changes = append(changes, models.FieldChange{
			Field:       k,
			Old:         oldVal,
			New:         newVal,
			Description: describeChange(k, oldVal, newVal),
		})
	}
	return changes
}

// deepEqual compares two JSON-compatible values structurally via canonical
// serialization (encoding/json emits map keys sorted).
func deepEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		// Unserializable values: fall back to formatted comparison rather
		// than reporting a phantom change.
		return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
	}
	return string(ja) == string(jb)
}

// describeChange produces the human description for one changed field. A few
// fields get special wording; passwords are never echoed back and branch
// assignments are never enumerated.
func describeChange(field string, oldVal, newVal any) string {
	switch field {
	case "password":
		return "Password was changed"
	case "is_active":
		if isTruthy(newVal) {
			return "Account was activated"
		}
		return "Account was deactivated"
	case "role":
		return fmt.Sprintf("Role changed from %s to %s",
			RoleLabel(stringify(oldVal)), RoleLabel(stringify(newVal)))
	case "branches":
		return "Branch assignments updated"
	default:
		return fmt.Sprintf("%s changed from %q to %q",
			Humanize(field), FormatValue(field, oldVal), FormatValue(field, newVal))
	}
}

// EntryChanges returns the field changes for an audit entry, preferring the
// pre-computed set stored with the row over recomputing from snapshots.
func EntryChanges(e *models.AuditLogEntry) []models.FieldChange {
	if e == nil {
		return nil
	}
	if len(e.FieldChanges) > 0 {
		return e.FieldChanges
	}
	return Changes(e.OldData, e.NewData)
}
