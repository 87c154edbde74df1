package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/repositories"
	"github.com/comla/comla/internal/pkg/apperrors"
	"github.com/comla/comla/internal/pkg/auth"
	"github.com/comla/comla/internal/pkg/email"
	"github.com/comla/comla/internal/pkg/logger"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateFavorites(ctx context.Context, userID int64, favorites []int64) error
}

// TokenPair carries the two tokens issued at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines the interface for authentication and profile operations
type AuthService interface {
	Register(ctx context.Context, req dto.SignupRequest) (*models.User, error)
	Login(ctx context.Context, emailAddr, password string) (*TokenPair, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, *models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error)
	ToggleFavorite(ctx context.Context, userID, collegeID int64) ([]int64, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo     UserStore
	jwtService   *auth.JWTService
	emailService email.EmailService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo UserStore, jwtService *auth.JWTService, emailService email.EmailService) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Register creates a new student account with a hashed password.
func (s *authServiceImpl) Register(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    emailAddr,
		Password: hashed,
		Role:     models.RoleStudent,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	// Best effort, a failed welcome email never fails the signup.
	if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
	}

	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *authServiceImpl) Login(ctx context.Context, emailAddr, password string) (*TokenPair, *models.User, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.IssueAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.jwtService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Refresh validates a refresh token and issues a fresh access token. The
// user row is re-read so role or email changes land in the new token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, *models.User, error) {
	claims, err := s.jwtService.Validate(refreshToken, auth.KindRefresh)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return "", nil, apperrors.ErrTokenExpired
		}
		return "", nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	accessToken, err := s.jwtService.IssueAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return accessToken, user, nil
}

// GetProfile returns the full profile of a user.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the user's academic profile.
// Fields omitted from the request keep their stored values.
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Subjects != nil {
		subjects := make([]models.Subject, 0, len(req.Subjects))
		for _, s := range req.Subjects {
			subjects = append(subjects, models.Subject{Name: s.Name, Marks: s.Marks})
		}
		user.Subjects = subjects
	}
	if req.CompetitiveExams != nil {
		exams := make([]models.CompetitiveExam, 0, len(req.CompetitiveExams))
		for _, e := range req.CompetitiveExams {
			exams = append(exams, models.CompetitiveExam{Exam: e.Exam, Rank: e.Rank})
		}
		user.CompetitiveExams = exams
	}
	if req.PreferredCourses != nil {
		user.PreferredCourses = req.PreferredCourses
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}
	if req.MinBudget != nil {
		user.MinBudget = req.MinBudget.Value
	}
	if req.MaxBudget != nil {
		user.MaxBudget = req.MaxBudget.Value
	}

	if user.MinBudget != nil && user.MaxBudget != nil && *user.MinBudget > *user.MaxBudget {
		return nil, fmt.Errorf("%w: minBudget cannot exceed maxBudget", apperrors.ErrValidationFailed)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// ToggleFavorite adds the college to the user's favorites, or removes it if
// already present, and returns the updated list.
func (s *authServiceImpl) ToggleFavorite(ctx context.Context, userID, collegeID int64) ([]int64, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	favorites := make([]int64, 0, len(user.Favorites)+1)
	removed := false
	for _, id := range user.Favorites {
		if id == collegeID {
			removed = true
			continue
		}
		favorites = append(favorites, id)
	}
	if !removed {
		favorites = append(favorites, collegeID)
	}

	if err := s.userRepo.UpdateFavorites(ctx, userID, favorites); err != nil {
		return nil, fmt.Errorf("failed to update favorites: %w", err)
	}

	return favorites, nil
}
