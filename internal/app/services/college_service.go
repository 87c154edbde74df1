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
	"github.com/comla/comla/internal/pkg/helpers"
	"github.com/comla/comla/internal/pkg/logger"
)

// CollegeStore is the slice of the college repository the service needs.
type CollegeStore interface {
	GetAllColleges(ctx context.Context) ([]models.College, error)
	GetCollegeByID(ctx context.Context, id int64) (*models.College, error)
	SearchColleges(ctx context.Context, params dto.SearchParams, offset uint64, limit int) ([]models.College, int64, error)
	CreateCollege(ctx context.Context, college *models.College) (int64, error)
	UpdateCollege(ctx context.Context, college *models.College) error
	DeleteCollege(ctx context.Context, id int64) error
}

// CollegeSnapshot is a secondary source for the public catalog, consulted
// when the primary store is down.
type CollegeSnapshot interface {
	Store(ctx context.Context, colleges []models.College)
	Load(ctx context.Context) ([]models.College, bool)
}

// CollegeService defines the interface for catalog and matching operations
type CollegeService interface {
	ListColleges(ctx context.Context) (*dto.CollegeListResponse, error)
	SearchColleges(ctx context.Context, params dto.SearchParams) (*dto.SearchResponse, error)
	GetCollege(ctx context.Context, id int64) (*models.College, error)
	CreateCollege(ctx context.Context, req dto.CreateCollegeRequest) (*models.College, error)
	UpdateCollege(ctx context.Context, id int64, req dto.UpdateCollegeRequest) (*models.College, error)
	DeleteCollege(ctx context.Context, id int64) error
	MatchForUser(ctx context.Context, userID int64) ([]models.ScoredCollege, error)
	MatchForProfile(ctx context.Context, profile models.MatchProfile) ([]models.ScoredCollege, error)
}

// collegeServiceImpl implements the CollegeService interface
type collegeServiceImpl struct {
	collegeRepo CollegeStore
	userRepo    UserStore
	snapshot    CollegeSnapshot
	fallback    []models.College
}

// NewCollegeService creates a new college service instance. fallback is the
// built-in dataset served when both the database and the snapshot are
// unavailable.
func NewCollegeService(collegeRepo CollegeStore, userRepo UserStore, snapshot CollegeSnapshot, fallback []models.College) CollegeService {
	return &collegeServiceImpl{
		collegeRepo: collegeRepo,
		userRepo:    userRepo,
		snapshot:    snapshot,
		fallback:    fallback,
	}
}

// ListColleges returns the public catalog. When the database is unreachable
// it degrades to the cached snapshot, then to the built-in fallback set,
// marking the response so clients can tell the data may be stale.
func (s *collegeServiceImpl) ListColleges(ctx context.Context) (*dto.CollegeListResponse, error) {
	colleges, err := s.collegeRepo.GetAllColleges(ctx)
	if err == nil {
		if s.snapshot != nil {
			s.snapshot.Store(ctx, colleges)
		}
		return &dto.CollegeListResponse{Colleges: withDefaultImages(colleges), Degraded: false}, nil
	}

	logger.Error().Err(err).Msg("College catalog query failed, serving degraded data")

	if s.snapshot != nil {
		if cached, ok := s.snapshot.Load(ctx); ok {
			return &dto.CollegeListResponse{Colleges: withDefaultImages(cached), Degraded: true, Source: "cache"}, nil
		}
	}

	return &dto.CollegeListResponse{Colleges: withDefaultImages(s.fallback), Degraded: true, Source: "fallback"}, nil
}

// withDefaultImages fills in the placeholder for colleges without images.
func withDefaultImages(colleges []models.College) []models.College {
	for i := range colleges {
		if len(colleges[i].Images) == 0 {
			colleges[i].Images = []string{models.DefaultCollegeImage}
		}
	}
	return colleges
}

// SearchColleges runs a filtered, paginated catalog query.
func (s *collegeServiceImpl) SearchColleges(ctx context.Context, params dto.SearchParams) (*dto.SearchResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	colleges, total, err := s.collegeRepo.SearchColleges(ctx, params, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: college search failed", apperrors.ErrDependencyUnavailable)
	}

	return &dto.SearchResponse{
		Colleges:   colleges,
		Pagination: helpers.NewPaginationInfo(total, params.Page, limit),
	}, nil
}

// GetCollege retrieves one college by ID.
func (s *collegeServiceImpl) GetCollege(ctx context.Context, id int64) (*models.College, error) {
	college, err := s.collegeRepo.GetCollegeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}
	if len(college.Images) == 0 {
		college.Images = []string{models.DefaultCollegeImage}
	}
	return college, nil
}

// CreateCollege registers a new college listing.
func (s *collegeServiceImpl) CreateCollege(ctx context.Context, req dto.CreateCollegeRequest) (*models.College, error) {
	college := &models.College{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
		Courses:     req.Courses,
		Fees:        req.Fees,
		Ranking:     req.Ranking,
		Images:      req.Images,
		Website:     req.Website,
	}

	id, err := s.collegeRepo.CreateCollege(ctx, college)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeAlreadyExists) {
			return nil, apperrors.NewConflictError("College with this name already exists")
		}
		return nil, fmt.Errorf("failed to create college: %w", err)
	}
	college.ID = id

	return college, nil
}

// UpdateCollege applies partial changes to a listing.
func (s *collegeServiceImpl) UpdateCollege(ctx context.Context, id int64, req dto.UpdateCollegeRequest) (*models.College, error) {
	college, err := s.collegeRepo.GetCollegeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}

	if req.Name != nil {
		college.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		college.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		college.Description = *req.Description
	}
	if req.Courses != nil {
		college.Courses = req.Courses
	}
	if req.Fees != nil {
		college.Fees = *req.Fees
	}
	if req.Ranking != nil {
		college.Ranking = req.Ranking
	}
	if req.Images != nil {
		college.Images = req.Images
	}
	if req.Website != nil {
		college.Website = *req.Website
	}
	if req.PlacementStats != nil {
		college.PlacementStats = req.PlacementStats
	}

	if err := s.collegeRepo.UpdateCollege(ctx, college); err != nil {
		return nil, fmt.Errorf("failed to update college: %w", err)
	}

	return college, nil
}

// DeleteCollege removes a listing.
func (s *collegeServiceImpl) DeleteCollege(ctx context.Context, id int64) error {
	if err := s.collegeRepo.DeleteCollege(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return apperrors.ErrCollegeNotFound
		}
		return fmt.Errorf("failed to delete college: %w", err)
	}
	return nil
}

// MatchForUser ranks the catalog against a student's stored profile.
func (s *collegeServiceImpl) MatchForUser(ctx context.Context, userID int64) ([]models.ScoredCollege, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.MatchForProfile(ctx, user.Profile())
}

// MatchForProfile ranks the catalog against an ad-hoc profile.
func (s *collegeServiceImpl) MatchForProfile(ctx context.Context, profile models.MatchProfile) ([]models.ScoredCollege, error) {
	colleges, err := s.collegeRepo.GetAllColleges(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: college catalog unavailable", apperrors.ErrDependencyUnavailable)
	}

	return rankColleges(profile, colleges), nil
}
