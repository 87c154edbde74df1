package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/repositories"
	"github.com/comla/comla/internal/pkg/apperrors"
	"github.com/comla/comla/internal/pkg/email"
	"github.com/comla/comla/internal/pkg/logger"
)

// ApplicationStore is the slice of the application repository the service needs.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	GetApplicationsByStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	GetApplicationsByCollege(ctx context.Context, collegeID int64) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	DeleteApplication(ctx context.Context, id int64) error
}

// ApplicationService defines the interface for application lifecycle operations
type ApplicationService interface {
	Apply(ctx context.Context, studentID, collegeID int64, documents []string) (*models.Application, error)
	ListForStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	ListForCollege(ctx context.Context, collegeID int64) ([]models.Application, error)
	Withdraw(ctx context.Context, studentID, applicationID int64) error
	SetStatus(ctx context.Context, caller *models.User, applicationID int64, status models.ApplicationStatus) (*models.Application, error)
}

// applicationServiceImpl implements the ApplicationService interface
type applicationServiceImpl struct {
	appRepo      ApplicationStore
	userRepo     UserStore
	collegeRepo  CollegeStore
	emailService email.EmailService
}

// NewApplicationService creates a new application service instance
func NewApplicationService(appRepo ApplicationStore, userRepo UserStore, collegeRepo CollegeStore, emailService email.EmailService) ApplicationService {
	return &applicationServiceImpl{
		appRepo:      appRepo,
		userRepo:     userRepo,
		collegeRepo:  collegeRepo,
		emailService: emailService,
	}
}

// Apply submits a new application in pending state. A student can hold at
// most one application per college.
func (s *applicationServiceImpl) Apply(ctx context.Context, studentID, collegeID int64, documents []string) (*models.Application, error) {
	college, err := s.collegeRepo.GetCollegeByID(ctx, collegeID)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to look up college: %w", err)
	}

	app := &models.Application{
		StudentID: studentID,
		CollegeID: collegeID,
		Status:    models.StatusPending,
		Documents: documents,
	}

	id, err := s.appRepo.CreateApplication(ctx, app)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationExists) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	app.ID = id
	app.CollegeName = college.Name
	app.CollegeLocation = college.Location

	return app, nil
}

// ListForStudent lists the applications a student has submitted.
func (s *applicationServiceImpl) ListForStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	apps, err := s.appRepo.GetApplicationsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListForCollege lists the applications a college has received.
func (s *applicationServiceImpl) ListForCollege(ctx context.Context, collegeID int64) ([]models.Application, error) {
	apps, err := s.appRepo.GetApplicationsByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Withdraw deletes an application. Only the student who submitted it may
// withdraw, regardless of its current status.
func (s *applicationServiceImpl) Withdraw(ctx context.Context, studentID, applicationID int64) error {
	app, err := s.appRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to look up application: %w", err)
	}

	if app.StudentID != studentID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.appRepo.DeleteApplication(ctx, applicationID); err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return fmt.Errorf("failed to withdraw application: %w", err)
	}

	return nil
}

// SetStatus records the decision on an application. Only the college that
// received the application or an admin may decide. Setting the same status
// again is a no-op that still succeeds.
func (s *applicationServiceImpl) SetStatus(ctx context.Context, caller *models.User, applicationID int64, status models.ApplicationStatus) (*models.Application, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	app, err := s.appRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}

	if !s.canDecide(caller, app) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	app.Status = status

	s.notifyStudent(ctx, app)

	return app, nil
}

// canDecide reports whether the caller may decide on the application.
func (s *applicationServiceImpl) canDecide(caller *models.User, app *models.Application) bool {
	if caller == nil {
		return false
	}
	if caller.Role == models.RoleAdmin {
		return true
	}
	return caller.Role == models.RoleCollege &&
		caller.CollegeID != nil &&
		*caller.CollegeID == app.CollegeID
}

// notifyStudent emails the applicant about the decision. Failures are
// logged and never surface to the caller.
func (s *applicationServiceImpl) notifyStudent(ctx context.Context, app *models.Application) {
	student, err := s.userRepo.GetUserByID(ctx, app.StudentID)
	if err != nil {
		logger.Warn().Err(err).Int64("studentID", app.StudentID).Msg("Could not load applicant for status notification")
		return
	}

	collegeName := app.CollegeName
	if collegeName == "" {
		if college, err := s.collegeRepo.GetCollegeByID(ctx, app.CollegeID); err == nil {
			collegeName = college.Name
		}
	}

	if err := s.emailService.SendApplicationStatusEmail(student.Email, student.Name, collegeName, string(app.Status)); err != nil {
		logger.Warn().Err(err).
			Int64("applicationID", app.ID).
			Str("email", student.Email).
			Msg("Failed to send application status email")
	}
}
