package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/repositories"
	"github.com/comla/comla/internal/pkg/apperrors"
)

// fakeAdminStore is a minimal AdminStore keeping users in a slice.
type fakeAdminStore struct {
	users []*models.User
}

func (f *fakeAdminStore) GetAllUsers(_ context.Context) ([]*models.User, error) {
	return f.users, nil
}

func (f *fakeAdminStore) UpdateRole(_ context.Context, userID int64, role models.Role, collegeID *int64) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Role = role
			u.CollegeID = collegeID
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeAdminStore) DeleteUser(_ context.Context, id int64) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeAdminStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeCollegeCounter struct{ count int64 }

func (f fakeCollegeCounter) CountColleges(_ context.Context) (int64, error) {
	return f.count, nil
}

type fakeApplicationOverview struct {
	total, pending int64
	apps           []models.Application
}

func (f fakeApplicationOverview) CountApplications(_ context.Context) (int64, int64, error) {
	return f.total, f.pending, nil
}

func (f fakeApplicationOverview) GetAllApplications(_ context.Context) ([]models.Application, error) {
	return f.apps, nil
}

func newAdminFixture() (AdminService, *fakeAdminStore) {
	store := &fakeAdminStore{users: []*models.User{
		{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleStudent},
		{ID: 2, Name: "Admin", Email: "admin@comla.app", Role: models.RoleAdmin},
	}}
	svc := NewAdminService(store, fakeCollegeCounter{count: 5}, fakeApplicationOverview{
		total:   12,
		pending: 4,
		apps: []models.Application{
			{ID: 1, StudentID: 1, CollegeID: 3, Status: models.StatusPending},
		},
	})
	return svc, store
}

func TestListUsersProjectsPublicFields(t *testing.T) {
	svc, _ := newAdminFixture()

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "asha@example.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
}

func TestUpdateUserRolePromoteToCollege(t *testing.T) {
	svc, store := newAdminFixture()

	collegeID := int64(7)
	require.NoError(t, svc.UpdateUserRole(context.Background(), 1, models.RoleCollege, &collegeID))

	assert.Equal(t, models.RoleCollege, store.users[0].Role)
	require.NotNil(t, store.users[0].CollegeID)
	assert.Equal(t, int64(7), *store.users[0].CollegeID)
}

func TestUpdateUserRoleCollegeRequiresCollegeID(t *testing.T) {
	svc, _ := newAdminFixture()

	err := svc.UpdateUserRole(context.Background(), 1, models.RoleCollege, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateUserRoleClearsCollegeIDForOtherRoles(t *testing.T) {
	svc, store := newAdminFixture()

	collegeID := int64(7)
	require.NoError(t, svc.UpdateUserRole(context.Background(), 1, models.RoleCollege, &collegeID))
	require.NoError(t, svc.UpdateUserRole(context.Background(), 1, models.RoleStudent, &collegeID))

	assert.Nil(t, store.users[0].CollegeID)
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	svc, _ := newAdminFixture()

	err := svc.UpdateUserRole(context.Background(), 1, "superuser", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateUserRoleUnknownUser(t *testing.T) {
	svc, _ := newAdminFixture()

	err := svc.UpdateUserRole(context.Background(), 404, models.RoleAdmin, nil)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeleteUserRemovesAccount(t *testing.T) {
	svc, store := newAdminFixture()

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	assert.Len(t, store.users, 1)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 1), apperrors.ErrUserNotFound)
}

func TestListApplicationsReturnsAll(t *testing.T) {
	svc, _ := newAdminFixture()

	apps, err := svc.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.StatusPending, apps[0].Status)
}

func TestStatsAggregatesCounters(t *testing.T) {
	svc, _ := newAdminFixture()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(5), stats.TotalColleges)
	assert.Equal(t, int64(12), stats.TotalApplications)
	assert.Equal(t, int64(4), stats.PendingReviews)
}
