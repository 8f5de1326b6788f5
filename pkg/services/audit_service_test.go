package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// mockAuditRepository is an in-memory AuditRepository for testing.
type mockAuditRepository struct {
	entries   []*models.AuditLogEntry
	createErr error
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLogEntry, int, error) {
	var result []*models.AuditLogEntry
	for _, e := range m.entries {
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		if filters.TableName != "" && e.TableName != filters.TableName {
			continue
		}
		result = append(result, e)
	}
	return result, len(result), nil
}

func (m *mockAuditRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLogEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAuditRepository) Summary(ctx context.Context, filters *models.AuditLogFilters) (*models.AuditSummary, error) {
	summary := &models.AuditSummary{TotalEvents: len(m.entries)}
	for _, e := range m.entries {
		switch e.Action {
		case models.AuditActionCreate:
			summary.CreateCount++
		case models.AuditActionUpdate:
			summary.UpdateCount++
		case models.AuditActionDelete:
			summary.DeleteCount++
		default:
			summary.AuthEventCount++
		}
	}
	return summary, nil
}

// mockAdminRepository is an in-memory AdminRepository for testing.
type mockAdminRepository struct {
	admins map[uuid.UUID]*models.Admin
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: make(map[uuid.UUID]*models.Admin)}
}

func (m *mockAdminRepository) List(ctx context.Context, limit, offset int) ([]*models.Admin, int, error) {
	var result []*models.Admin
	for _, a := range m.admins {
		result = append(result, a)
	}
	return result, len(result), nil
}

func (m *mockAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	if a, ok := m.admins[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	m.admins[admin.ID] = admin
	return nil
}

func (m *mockAdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	if _, ok := m.admins[admin.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.admins[admin.ID] = admin
	return nil
}

func (m *mockAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.admins[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.admins, id)
	return nil
}

func (m *mockAdminRepository) CountActiveSuperAdmins(ctx context.Context) (int, error) {
	count := 0
	for _, a := range m.admins {
		if a.Role == models.RoleSuperAdmin && a.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *mockAdminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if a, ok := m.admins[id]; ok {
		a.LastLogin = &at
	}
	return nil
}

func authedContext(adminID uuid.UUID) context.Context {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: adminID.String()},
		Role:             models.RoleAdmin,
	}
	return context.WithValue(context.Background(), auth.ClaimsKey, claims)
}

func TestAuditService_LogUpdate(t *testing.T) {
	repo := &mockAuditRepository{}
	svc := NewAuditService(repo, newMockAdminRepository(), zap.NewNop())

	adminID := uuid.New()
	ctx := authedContext(adminID)

	old := map[string]any{"price": 1000.0, "name": "Chicken Thighs"}
	updated := map[string]any{"price": 1250.0, "name": "Chicken Thighs"}
	svc.LogUpdate(ctx, "products", "rec-1", old, updated, nil)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, models.AuditActionUpdate, entry.Action)
	assert.Equal(t, "products", entry.TableName)
	require.NotNil(t, entry.AdminID)
	assert.Equal(t, adminID, *entry.AdminID)

	require.NotNil(t, entry.ChangeSummary)
	assert.Equal(t, "Updated products", *entry.ChangeSummary)

	require.Len(t, entry.FieldChanges, 1)
	assert.Equal(t, "price", entry.FieldChanges[0].Field)
	assert.Contains(t, entry.FieldChanges[0].Description, "₱1,250.00")
}

func TestAuditService_LogCreate_NoAuthContext(t *testing.T) {
	repo := &mockAuditRepository{}
	svc := NewAuditService(repo, newMockAdminRepository(), zap.NewNop())

	svc.LogCreate(context.Background(), "products", "rec-1", map[string]any{"name": "Bangus"}, nil)

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].AdminID, "system operations have no admin")
}

func TestAuditService_RecordFailureIsSwallowed(t *testing.T) {
	repo := &mockAuditRepository{createErr: assert.AnError}
	svc := NewAuditService(repo, newMockAdminRepository(), zap.NewNop())

	// Must not panic or propagate: audit failures never break the operation.
	svc.LogDelete(context.Background(), "products", "rec-1", map[string]any{"name": "Bangus"}, nil)
	assert.Empty(t, repo.entries)
}

func TestAuditService_ListPrefersStoredSummaries(t *testing.T) {
	repo := &mockAuditRepository{}
	stored := "Updated pricing for Q3"
	repo.entries = append(repo.entries, &models.AuditLogEntry{
		ID:            uuid.New(),
		Action:        models.AuditActionUpdate,
		TableName:     "products",
		ChangeSummary: &stored,
		OldData:       map[string]any{"price": 1.0},
		NewData:       map[string]any{"price": 2.0},
	})

	svc := NewAuditService(repo, newMockAdminRepository(), zap.NewNop())
	page, err := svc.List(context.Background(), &models.AuditLogFilters{})
	require.NoError(t, err)

	require.Len(t, page.Events, 1)
	assert.Equal(t, stored, page.Events[0].Summary)
	assert.Equal(t, 1, page.Total)
}

func TestAuditService_Timeline(t *testing.T) {
	now := time.Date(2026, 8, 19, 15, 0, 0, 0, time.UTC)
	repo := &mockAuditRepository{entries: []*models.AuditLogEntry{
		{ID: uuid.New(), Action: "create", TableName: "products", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Action: "update", TableName: "orders", CreatedAt: now.AddDate(0, 0, -1)},
	}}

	svc := NewAuditService(repo, newMockAdminRepository(), zap.NewNop())
	groups, err := svc.Timeline(context.Background(), &models.AuditLogFilters{}, now)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "Today", groups[0].Label)
	assert.Equal(t, "Yesterday", groups[1].Label)
}

func TestAuditService_ExportCSV(t *testing.T) {
	adminRepo := newMockAdminRepository()
	admin := &models.Admin{ID: uuid.New(), FullName: "Jane Dela Cruz", Role: models.RoleAdmin}
	adminRepo.admins[admin.ID] = admin

	repo := &mockAuditRepository{entries: []*models.AuditLogEntry{
		{ID: uuid.New(), Action: "create", TableName: "products", CreatedAt: time.Now()},
	}}

	svc := NewAuditService(repo, adminRepo, zap.NewNop())
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	filename, content, err := svc.ExportCSV(context.Background(), &models.AuditLogFilters{AdminID: &admin.ID}, now)
	require.NoError(t, err)
	assert.Equal(t, "audit-log-jane-dela-cruz-2026-08-24.csv", filename)
	assert.True(t, strings.HasPrefix(content, `"Date/Time"`))

	filename, _, err = svc.ExportCSV(context.Background(), &models.AuditLogFilters{}, now)
	require.NoError(t, err)
	assert.Equal(t, "audit-log-all-2026-08-24.csv", filename)
}

func TestSnapshot(t *testing.T) {
	admin := &models.Admin{ID: uuid.New(), FullName: "Jane", Role: models.RoleStaff, IsActive: true}
	snap := Snapshot(admin)

	require.NotNil(t, snap)
	assert.Equal(t, "Jane", snap["full_name"])
	assert.Equal(t, "staff", snap["role"])
	assert.Equal(t, true, snap["is_active"])
}
