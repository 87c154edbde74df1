package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/pkg/dberrors"
	"github.com/comla/comla/internal/pkg/logger"
)

// Application error types
var (
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = ErrNotFound
	// ErrApplicationExists is returned when the student already applied to the college.
	ErrApplicationExists = errors.New("application to this college already exists")
)

// uqApplicationConstraint is the unique constraint guarding one application
// per student and college pair.
const uqApplicationConstraint = "uq_applications_student_college"

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateApplication inserts a new application. The unique constraint on
// (student_id, college_id) makes concurrent duplicate submissions lose
// cleanly, whichever insert commits second gets ErrApplicationExists.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) (int64, error) {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "college_id", "status", "documents").
		Values(app.StudentID, app.CollegeID, app.Status, app.Documents).
		Suffix("RETURNING id, applied_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &app.AppliedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uqApplicationConstraint) || dberrors.IsUniqueViolation(err) {
			return 0, ErrApplicationExists
		}
		logger.Error().Err(err).
			Int64("studentID", app.StudentID).
			Int64("collegeID", app.CollegeID).
			Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetApplicationByID retrieves an application by ID
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.sb.Select("id", "student_id", "college_id", "status", "documents", "applied_at").
		From("applications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app := &models.Application{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&app.ID, &app.StudentID, &app.CollegeID, &app.Status, &app.Documents, &app.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by ID: %w", err)
	}

	return app, nil
}

// GetApplicationsByStudent lists a student's applications with the college
// name and location joined in for display.
func (r *ApplicationRepository) GetApplicationsByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.college_id", "a.status", "a.documents", "a.applied_at",
		"c.name", "c.location").
		From("applications a").
		Join("colleges c ON c.id = a.college_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applications by student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing applications by student query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app := models.Application{}
		err := rows.Scan(
			&app.ID, &app.StudentID, &app.CollegeID, &app.Status, &app.Documents, &app.AppliedAt,
			&app.CollegeName, &app.CollegeLocation,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// GetApplicationsByCollege lists applications received by a college with the
// applicant's name and email joined in.
func (r *ApplicationRepository) GetApplicationsByCollege(ctx context.Context, collegeID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.college_id", "a.status", "a.documents", "a.applied_at",
		"u.name", "u.email").
		From("applications a").
		Join("users u ON u.id = a.student_id").
		Where(squirrel.Eq{"a.college_id": collegeID}).
		OrderBy("a.applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applications by college query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("collegeID", collegeID).Msg("Error executing applications by college query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app := models.Application{}
		err := rows.Scan(
			&app.ID, &app.StudentID, &app.CollegeID, &app.Status, &app.Documents, &app.AppliedAt,
			&app.StudentName, &app.StudentEmail,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// GetAllApplications lists every application with the applicant and the
// college joined in, for the admin overview.
func (r *ApplicationRepository) GetAllApplications(ctx context.Context) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.college_id", "a.status", "a.documents", "a.applied_at",
		"u.name", "u.email", "c.name", "c.location").
		From("applications a").
		Join("users u ON u.id = a.student_id").
		Join("colleges c ON c.id = a.college_id").
		OrderBy("a.applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build all applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing all applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app := models.Application{}
		err := rows.Scan(
			&app.ID, &app.StudentID, &app.CollegeID, &app.Status, &app.Documents, &app.AppliedAt,
			&app.StudentName, &app.StudentEmail, &app.CollegeName, &app.CollegeLocation,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// UpdateStatus sets the decision on an application
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing update status query")
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// DeleteApplication removes an application row
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing delete application query")
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// CountApplications returns totals for the admin dashboard, overall and
// still pending.
func (r *ApplicationRepository) CountApplications(ctx context.Context) (total int64, pending int64, err error) {
	err = r.db.QueryRow(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending') FROM applications",
	).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting applications: %w", err)
	}
	return total, pending, nil
}
