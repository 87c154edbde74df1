package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/repositories"
	"github.com/comla/comla/internal/pkg/apperrors"
)

// AdminStore is the slice of the repositories the admin service needs.
type AdminStore interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, userID int64, role models.Role, collegeID *int64) error
	DeleteUser(ctx context.Context, id int64) error
	CountUsers(ctx context.Context) (int64, error)
}

// CollegeCounter exposes the college total shown on the admin dashboard.
type CollegeCounter interface {
	CountColleges(ctx context.Context) (int64, error)
}

// ApplicationOverview exposes the application totals and the full listing
// the admin surface needs.
type ApplicationOverview interface {
	CountApplications(ctx context.Context) (total int64, pending int64, err error)
	GetAllApplications(ctx context.Context) ([]models.Application, error)
}

// AdminService defines the interface for platform administration operations
type AdminService interface {
	ListUsers(ctx context.Context) ([]dto.UserInfo, error)
	UpdateUserRole(ctx context.Context, userID int64, role models.Role, collegeID *int64) error
	DeleteUser(ctx context.Context, userID int64) error
	ListApplications(ctx context.Context) ([]models.Application, error)
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	userRepo    AdminStore
	collegeRepo CollegeCounter
	appRepo     ApplicationOverview
}

// NewAdminService creates a new admin service instance
func NewAdminService(userRepo AdminStore, collegeRepo CollegeCounter, appRepo ApplicationOverview) AdminService {
	return &adminServiceImpl{
		userRepo:    userRepo,
		collegeRepo: collegeRepo,
		appRepo:     appRepo,
	}
}

// ListUsers returns every registered account as its public projection.
func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]dto.UserInfo, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	infos := make([]dto.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, dto.NewUserInfo(u))
	}
	return infos, nil
}

// UpdateUserRole changes an account's role. Promoting to the college role
// requires the college the account will manage.
func (s *adminServiceImpl) UpdateUserRole(ctx context.Context, userID int64, role models.Role, collegeID *int64) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}
	if role == models.RoleCollege && collegeID == nil {
		return fmt.Errorf("%w: collegeId is required for the college role", apperrors.ErrValidationFailed)
	}
	if role != models.RoleCollege {
		collegeID = nil
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role, collegeID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user role: %w", err)
	}
	return nil
}

// DeleteUser removes an account.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ListApplications returns every application across the platform.
func (s *adminServiceImpl) ListApplications(ctx context.Context) ([]models.Application, error) {
	apps, err := s.appRepo.GetAllApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Stats gathers the dashboard totals.
func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	users, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	colleges, err := s.collegeRepo.CountColleges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count colleges: %w", err)
	}
	total, pending, err := s.appRepo.CountApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	return &dto.AdminStatsResponse{
		TotalUsers:        users,
		TotalColleges:     colleges,
		TotalApplications: total,
		PendingReviews:    pending,
	}, nil
}
