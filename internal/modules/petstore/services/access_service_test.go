package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
)

// fakeAccessRepo is an in-memory AccessRepo for service tests.
type fakeAccessRepo struct {
	assignments map[string]models.UserAccess
}

func newFakeAccessRepo(seed ...models.UserAccess) *fakeAccessRepo {
	repo := &fakeAccessRepo{assignments: make(map[string]models.UserAccess)}
	for _, a := range seed {
		repo.assignments[a.ID.String()] = a
	}
	return repo
}

func (r *fakeAccessRepo) List(_ context.Context) ([]models.UserAccess, error) {
	out := make([]models.UserAccess, 0, len(r.assignments))
	for _, a := range r.assignments {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAccessRepo) GetByID(_ context.Context, id string) (*models.UserAccess, error) {
	access, ok := r.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &access, nil
}

func (r *fakeAccessRepo) GetByEmail(_ context.Context, email string) (*models.UserAccess, error) {
	for _, a := range r.assignments {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAccessRepo) Replace(_ context.Context, access *models.UserAccess) error {
	r.assignments[access.ID.String()] = *access
	return nil
}

func (r *fakeAccessRepo) Insert(_ context.Context, access *models.UserAccess) error {
	if access.ID == uuid.Nil {
		access.ID = uuid.New()
	}
	r.assignments[access.ID.String()] = *access
	return nil
}

func seedAssignment() models.UserAccess {
	return models.UserAccess{
		ID:          uuid.New(),
		Email:       "carla@petmanager.local",
		Role:        models.RoleSeller,
		Permissions: []string{models.PermSales},
	}
}

func TestCommitReplacesWholeAssignment(t *testing.T) {
	stored := seedAssignment()
	repo := newFakeAccessRepo(stored)
	service := NewAccessService(repo)

	draft, err := service.BeginEdit(context.Background(), stored.ID.String())
	require.NoError(t, err)

	draft.SetRole(models.RoleSupervisor)
	draft.TogglePermission(models.PermReports)
	draft.TogglePermission(models.PermSales) // remove

	updated, err := service.Commit(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, models.RoleSupervisor, updated.Role)
	assert.Equal(t, []string{models.PermReports}, []string(updated.Permissions))

	persisted := repo.assignments[stored.ID.String()]
	assert.Equal(t, models.RoleSupervisor, persisted.Role)
	assert.Equal(t, []string{models.PermReports}, []string(persisted.Permissions))
}

func TestDraftEditsDoNotLeakBeforeCommit(t *testing.T) {
	stored := seedAssignment()
	repo := newFakeAccessRepo(stored)
	service := NewAccessService(repo)

	draft, err := service.BeginEdit(context.Background(), stored.ID.String())
	require.NoError(t, err)

	draft.SetRole(models.RoleAdmin)
	draft.TogglePermission(models.PermInventory)

	// Draft dropped without commit: the store still holds the original.
	persisted := repo.assignments[stored.ID.String()]
	assert.Equal(t, models.RoleSeller, persisted.Role)
	assert.Equal(t, []string{models.PermSales}, []string(persisted.Permissions))
}

func TestCommitValidatesRoleAndPermissions(t *testing.T) {
	tests := []struct {
		name  string
		stage func(*AccessDraft)
		field string
	}{
		{"unknown role", func(d *AccessDraft) { d.SetRole("owner") }, "role"},
		{"unknown permission", func(d *AccessDraft) { d.SetPermissions([]string{"billing"}) }, "permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := seedAssignment()
			repo := newFakeAccessRepo(stored)
			service := NewAccessService(repo)

			draft, err := service.BeginEdit(context.Background(), stored.ID.String())
			require.NoError(t, err)
			tt.stage(draft)

			_, err = service.Commit(context.Background(), draft)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)

			persisted := repo.assignments[stored.ID.String()]
			assert.Equal(t, models.RoleSeller, persisted.Role, "store untouched on validation failure")
		})
	}
}

func TestTogglePermissionAddsAndRemoves(t *testing.T) {
	draft := &AccessDraft{}

	draft.TogglePermission(models.PermSales)
	assert.Equal(t, []string{models.PermSales}, []string(draft.Assignment().Permissions))

	draft.TogglePermission(models.PermSales)
	assert.Empty(t, draft.Assignment().Permissions)
}

func TestListFiltersByEmailSubstring(t *testing.T) {
	carla := seedAssignment()
	bruno := models.UserAccess{
		ID:    uuid.New(),
		Email: "bruno@petmanager.local",
		Role:  models.RoleManager,
	}
	service := NewAccessService(newFakeAccessRepo(carla, bruno))

	matches, err := service.List(context.Background(), "CARLA")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, carla.Email, matches[0].Email)

	all, err := service.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetUnknownAssignment(t *testing.T) {
	service := NewAccessService(newFakeAccessRepo())

	_, err := service.Get(context.Background(), uuid.NewString())

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
