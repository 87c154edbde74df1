package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/pkg/apperrors"
)

type applicationFixture struct {
	svc     ApplicationService
	apps    *fakeApplicationStore
	users   *fakeUserStore
	mailer  *fakeEmailService
	student *models.User
	college *models.College
	officer *models.User
	admin   *models.User
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()

	users := newFakeUserStore()
	colleges := newFakeCollegeStore(models.College{Name: "Delhi University", Location: "Delhi"})
	apps := newFakeApplicationStore()
	mailer := &fakeEmailService{}

	studentID, err := users.CreateUser(context.Background(), &models.User{
		Name: "Asha", Email: "asha@example.com", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	collegeID := int64(1)
	officerID, err := users.CreateUser(context.Background(), &models.User{
		Name: "Officer", Email: "officer@du.ac.in", Role: models.RoleCollege, CollegeID: &collegeID,
	})
	require.NoError(t, err)

	adminID, err := users.CreateUser(context.Background(), &models.User{
		Name: "Admin", Email: "admin@comla.app", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	student, _ := users.GetUserByID(context.Background(), studentID)
	officer, _ := users.GetUserByID(context.Background(), officerID)
	admin, _ := users.GetUserByID(context.Background(), adminID)
	college, _ := colleges.GetCollegeByID(context.Background(), collegeID)

	return &applicationFixture{
		svc:     NewApplicationService(apps, users, colleges, mailer),
		apps:    apps,
		users:   users,
		mailer:  mailer,
		student: student,
		college: college,
		officer: officer,
		admin:   admin,
	}
}

func TestApplyStartsPending(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, []string{"uploads/documents/marks.pdf"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, "Delhi University", app.CollegeName)
	assert.Equal(t, []string{"uploads/documents/marks.pdf"}, app.Documents)
}

func TestApplyUnknownCollege(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.student.ID, 999, nil)
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)
}

func TestApplyDuplicateRejected(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestWithdrawByOwner(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Withdraw(context.Background(), f.student.ID, app.ID))

	// After withdrawing, the student can apply again.
	_, err = f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	assert.NoError(t, err)
}

func TestWithdrawByOtherStudentDenied(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	otherID, err := f.users.CreateUser(context.Background(), &models.User{
		Name: "Ravi", Email: "ravi@example.com", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	err = f.svc.Withdraw(context.Background(), otherID, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Application is untouched.
	_, err = f.apps.GetApplicationByID(context.Background(), app.ID)
	assert.NoError(t, err)
}

func TestWithdrawDecidedApplication(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), f.officer, app.ID, models.StatusAccepted)
	require.NoError(t, err)

	// Withdrawal works regardless of the decision already taken.
	assert.NoError(t, f.svc.Withdraw(context.Background(), f.student.ID, app.ID))
}

func TestSetStatusByOwningCollege(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(context.Background(), f.officer, app.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	assert.Equal(t, []string{"asha@example.com"}, f.mailer.statusMails)
}

func TestSetStatusByAdmin(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(context.Background(), f.admin, app.ID, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
}

func TestSetStatusByForeignCollegeDenied(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	otherCollegeID := int64(77)
	foreign := &models.User{ID: 99, Role: models.RoleCollege, CollegeID: &otherCollegeID}

	_, err = f.svc.SetStatus(context.Background(), foreign, app.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetStatusByStudentDenied(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), f.student, app.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetStatusIdempotent(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), f.officer, app.ID, models.StatusAccepted)
	require.NoError(t, err)

	// Setting the same status again still succeeds.
	updated, err := f.svc.SetStatus(context.Background(), f.officer, app.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
}

func TestSetStatusInvalidValue(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), f.officer, app.ID, "waitlisted")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestSetStatusSucceedsWhenEmailFails(t *testing.T) {
	f := newApplicationFixture(t)
	f.mailer.fail = true

	app, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	// Notification is best effort, the decision must still land.
	updated, err := f.svc.SetStatus(context.Background(), f.officer, app.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	stored, err := f.apps.GetApplicationByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, stored.Status)
}

func TestListForStudentAndCollege(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.student.ID, f.college.ID, nil)
	require.NoError(t, err)

	mine, err := f.svc.ListForStudent(context.Background(), f.student.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	received, err := f.svc.ListForCollege(context.Background(), f.college.ID)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	none, err := f.svc.ListForStudent(context.Background(), 12345)
	require.NoError(t, err)
	assert.Empty(t, none)
}
