package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/pkg/dberrors"
	"github.com/comla/comla/internal/pkg/logger"
)

// College error types
var (
	// ErrCollegeNotFound is returned when a college is not found.
	ErrCollegeNotFound = ErrNotFound
	// ErrCollegeAlreadyExists is returned when a college with the same name exists.
	ErrCollegeAlreadyExists = errors.New("college with this name already exists")
)

// sortableColumns whitelists the columns search results may be ordered by.
// Anything else falls back to the default ordering.
var sortableColumns = map[string]string{
	"name":     "name",
	"location": "location",
	"fees":     "fees",
}

var collegeColumns = []string{
	"id", "name", "location", "description", "courses", "fees", "ranking",
	"images", "website", "placement_stats", "reviews", "created_at", "updated_at",
}

// CollegeRepository handles college database operations
type CollegeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCollege(row pgx.Row) (*models.College, error) {
	college := &models.College{}
	err := row.Scan(
		&college.ID, &college.Name, &college.Location, &college.Description,
		&college.Courses, &college.Fees, &college.Ranking,
		&college.Images, &college.Website, &college.PlacementStats, &college.Reviews,
		&college.CreatedAt, &college.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return college, nil
}

// searchPredicates translates recognized search parameters into SQL
// predicates. Unknown parameters never reach this point.
func searchPredicates(params dto.SearchParams) []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer

	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if params.Location != "" {
		preds = append(preds, squirrel.ILike{"location": "%" + params.Location + "%"})
	}
	if len(params.Courses) > 0 {
		// Array overlap: at least one requested course is offered
		preds = append(preds, squirrel.Expr("courses && ?", params.Courses))
	}
	if params.MinFees != nil {
		preds = append(preds, squirrel.GtOrEq{"fees": *params.MinFees})
	}
	if params.MaxFees != nil {
		preds = append(preds, squirrel.LtOrEq{"fees": *params.MaxFees})
	}

	return preds
}

// orderClause resolves the sort column and direction against the whitelist.
func orderClause(sortBy, sortOrder string) string {
	column, ok := sortableColumns[sortBy]
	if !ok {
		column = "name"
	}
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}
	return column + " " + direction
}

// SearchColleges runs a filtered, paginated college query and returns the
// matching page together with the total match count.
func (r *CollegeRepository) SearchColleges(ctx context.Context, params dto.SearchParams, offset uint64, limit int) ([]models.College, int64, error) {
	preds := searchPredicates(params)

	countQuery := r.sb.Select("COUNT(*)").From("colleges")
	dataQuery := r.sb.Select(collegeColumns...).From("colleges")
	for _, p := range preds {
		countQuery = countQuery.Where(p)
		dataQuery = dataQuery.Where(p)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build college count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing college count query")
		return nil, 0, fmt.Errorf("error counting colleges: %w", err)
	}

	sql, args, err = dataQuery.
		OrderBy(orderClause(params.SortBy, params.SortOrder)).
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build college search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing college search query")
		return nil, 0, fmt.Errorf("error searching colleges: %w", err)
	}
	defer rows.Close()

	colleges := []models.College{}
	for rows.Next() {
		college, err := scanCollege(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning college row")
			return nil, 0, fmt.Errorf("error scanning college: %w", err)
		}
		colleges = append(colleges, *college)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating college rows: %w", err)
	}

	return colleges, total, nil
}

// GetAllColleges retrieves the full college catalog
func (r *CollegeRepository) GetAllColleges(ctx context.Context) ([]models.College, error) {
	sql, args, err := r.sb.Select(collegeColumns...).
		From("colleges").
		OrderBy("ranking ASC NULLS LAST", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all colleges query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all colleges query")
		return nil, fmt.Errorf("error querying colleges: %w", err)
	}
	defer rows.Close()

	colleges := []models.College{}
	for rows.Next() {
		college, err := scanCollege(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning college row")
			return nil, fmt.Errorf("error scanning college: %w", err)
		}
		colleges = append(colleges, *college)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating college rows: %w", err)
	}

	return colleges, nil
}

// GetCollegeByID retrieves a college by ID
func (r *CollegeRepository) GetCollegeByID(ctx context.Context, id int64) (*models.College, error) {
	sql, args, err := r.sb.Select(collegeColumns...).
		From("colleges").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get college query: %w", err)
	}

	college, err := scanCollege(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollegeNotFound
		}
		logger.Error().Err(err).Int64("collegeID", id).Msg("Error scanning college row")
		return nil, fmt.Errorf("error getting college by ID: %w", err)
	}

	return college, nil
}

// CreateCollege inserts a new college listing and returns its ID
func (r *CollegeRepository) CreateCollege(ctx context.Context, college *models.College) (int64, error) {
	sql, args, err := r.sb.Insert("colleges").
		Columns("name", "location", "description", "courses", "fees", "ranking",
			"images", "website", "placement_stats", "reviews").
		Values(college.Name, college.Location, college.Description, college.Courses,
			college.Fees, college.Ranking, college.Images, college.Website,
			college.PlacementStats, college.Reviews).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create college query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, ErrCollegeAlreadyExists
		}
		logger.Error().Err(err).Str("name", college.Name).Msg("Error executing create college query")
		return 0, fmt.Errorf("error creating college: %w", err)
	}

	return id, nil
}

// UpdateCollege persists changes to a college listing
func (r *CollegeRepository) UpdateCollege(ctx context.Context, college *models.College) error {
	sql, args, err := r.sb.Update("colleges").
		Set("name", college.Name).
		Set("location", college.Location).
		Set("description", college.Description).
		Set("courses", college.Courses).
		Set("fees", college.Fees).
		Set("ranking", college.Ranking).
		Set("images", college.Images).
		Set("website", college.Website).
		Set("placement_stats", college.PlacementStats).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": college.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update college query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("collegeID", college.ID).Msg("Error executing update college query")
		return fmt.Errorf("error updating college: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCollegeNotFound
	}

	return nil
}

// DeleteCollege removes a college listing
func (r *CollegeRepository) DeleteCollege(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("colleges").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete college query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("collegeID", id).Msg("Error executing delete college query")
		return fmt.Errorf("error deleting college: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCollegeNotFound
	}

	return nil
}

// CountColleges returns the number of college listings
func (r *CollegeRepository) CountColleges(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM colleges").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting colleges: %w", err)
	}
	return count, nil
}
