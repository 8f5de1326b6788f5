package audittrail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

func TestChanges_NilSideReturnsEmpty(t *testing.T) {
	assert.Empty(t, Changes(nil, map[string]any{"name": "A"}))
	assert.Empty(t, Changes(map[string]any{"name": "A"}, nil))
	assert.Empty(t, Changes(nil, nil))
}

func TestChanges_SkipsInfrastructureFields(t *testing.T) {
	before := map[string]any{"id": "x", "created_at": "t", "updated_at": "u", "user_id": "a", "name": "A"}
	after := map[string]any{"id": "y", "created_at": "t2", "updated_at": "u2", "user_id": "b", "name": "B"}

	changes := Changes(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, "name", changes[0].Field)
	assert.Equal(t, "A", changes[0].Old)
	assert.Equal(t, "B", changes[0].New)
}

func TestChanges_UnchangedFieldsOmitted(t *testing.T) {
	before := map[string]any{"name": "A", "price": 10.0}
	after := map[string]any{"name": "A", "price": 12.0}

	changes := Changes(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, "price", changes[0].Field)
}

func TestChanges_DeepEqualityOnNestedValues(t *testing.T) {
	before := map[string]any{"items": []any{map[string]any{"qty": 1.0}}}
	after := map[string]any{"items": []any{map[string]any{"qty": 1.0}}}
	assert.Empty(t, Changes(before, after))

	after["items"] = []any{map[string]any{"qty": 2.0}}
	assert.Len(t, Changes(before, after), 1)
}

func TestChanges_SortedByFieldName(t *testing.T) {
	before := map[string]any{"zeta": 1.0, "alpha": 1.0, "mid": 1.0}
	after := map[string]any{"zeta": 2.0, "alpha": 2.0, "mid": 2.0}

	changes := Changes(before, after)
	require.Len(t, changes, 3)
	assert.Equal(t, "alpha", changes[0].Field)
	assert.Equal(t, "mid", changes[1].Field)
	assert.Equal(t, "zeta", changes[2].Field)
}

func TestChanges_PasswordNeverLeaks(t *testing.T) {
	before := map[string]any{"password": "hunter2-old"}
	after := map[string]any{"password": "hunter2-new"}

	changes := Changes(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, "Password was changed", changes[0].Description)
	assert.NotContains(t, changes[0].Description, "hunter2-old")
	assert.NotContains(t, changes[0].Description, "hunter2-new")
}

func TestChanges_ActivationWording(t *testing.T) {
	changes := Changes(map[string]any{"is_active": true}, map[string]any{"is_active": false})
	require.Len(t, changes, 1)
	assert.Equal(t, "Account was deactivated", changes[0].Description)

	changes = Changes(map[string]any{"is_active": false}, map[string]any{"is_active": true})
	require.Len(t, changes, 1)
	assert.Equal(t, "Account was activated", changes[0].Description)
}

func TestChanges_RoleUsesEnumLabels(t *testing.T) {
	changes := Changes(map[string]any{"role": "admin"}, map[string]any{"role": "super_admin"})
	require.Len(t, changes, 1)
	assert.Equal(t, "Role changed from Admin to Super Admin", changes[0].Description)
}

func TestChanges_BranchesNeverEnumerated(t *testing.T) {
	before := map[string]any{"branches": []any{"branch-7f2a"}}
	after := map[string]any{"branches": []any{"branch-7f2a", "branch-9c1d"}}

	changes := Changes(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, "Branch assignments updated", changes[0].Description)
	assert.NotContains(t, changes[0].Description, "branch-9c1d")
}

func TestChanges_GenericTemplateFormatsValues(t *testing.T) {
	changes := Changes(
		map[string]any{"total_amount": 1000.0},
		map[string]any{"total_amount": 1234.5},
	)
	require.Len(t, changes, 1)
	desc := changes[0].Description
	assert.True(t, strings.HasPrefix(desc, "Total Amount changed from"), desc)
	assert.Contains(t, desc, "₱1,000.00")
	assert.Contains(t, desc, "₱1,234.50")
}

func TestChanges_FieldAppearingOnOneSide(t *testing.T) {
	// A field present only after the update still reports as a change, with
	// the missing side rendered as N/A.
	changes := Changes(map[string]any{}, map[string]any{"category": "seafood"})
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0].Description, "N/A")
	assert.Contains(t, changes[0].Description, "seafood")
}

func TestEntryChanges_PrefersStoredFieldChanges(t *testing.T) {
	stored := []models.FieldChange{{Field: "name", Description: "precomputed upstream"}}
	e := &models.AuditLogEntry{
		FieldChanges: stored,
		OldData:      map[string]any{"name": "A"},
		NewData:      map[string]any{"name": "B"},
	}
	changes := EntryChanges(e)
	require.Len(t, changes, 1)
	assert.Equal(t, "precomputed upstream", changes[0].Description)
}

func TestEntryChanges_RecomputesWhenAbsent(t *testing.T) {
	e := &models.AuditLogEntry{
		OldData: map[string]any{"name": "A"},
		NewData: map[string]any{"name": "B"},
	}
	changes := EntryChanges(e)
	require.Len(t, changes, 1)
	assert.Equal(t, "name", changes[0].Field)
}

func TestEndToEnd_AdminDeactivation(t *testing.T) {
	oldData := map[string]any{"full_name": "Jane Doe", "is_active": true}
	newData := map[string]any{"full_name": "Jane Doe", "is_active": false}

	changes := Changes(oldData, newData)
	require.Len(t, changes, 1)
	assert.Equal(t, "is_active", changes[0].Field)
	assert.Equal(t, "Account was deactivated", changes[0].Description)

	summary := Summarize(models.AuditActionUpdate, "admins", oldData, newData)
	assert.Equal(t, "Updated admin account for Jane Doe", summary)
}
