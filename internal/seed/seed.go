// Package seed provides default data for fresh installs and the built-in
// fallback catalog served when the database is unreachable.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/comla/comla/internal/app/models"
	appRepos "github.com/comla/comla/internal/app/repositories"
	"github.com/comla/comla/internal/pkg/auth"
)

func intPtr(v int) *int { return &v }

// FallbackColleges returns the built-in catalog. It doubles as the seed data
// for an empty database and as the last-resort data source for the public
// college listing.
func FallbackColleges() []appModels.College {
	return []appModels.College{
		{
			Name:        "Delhi University",
			Location:    "Delhi",
			Description: "One of India's premier universities with excellent placement records and diverse academic programs.",
			Courses:     []string{"Computer Science", "Business Administration", "Engineering", "Arts", "Commerce"},
			Fees:        50000,
			Ranking:     intPtr(1),
			Website:     "https://www.du.ac.in",
		},
		{
			Name:        "IIT Delhi",
			Location:    "Delhi",
			Description: "Premier engineering institute known for cutting-edge research and innovation.",
			Courses:     []string{"Computer Science", "Mechanical Engineering", "Electrical Engineering", "Civil Engineering"},
			Fees:        200000,
			Ranking:     intPtr(2),
			Website:     "https://www.iitd.ac.in",
			PlacementStats: &appModels.PlacementStats{
				AverageSalary: 1800000,
				HighestSalary: 4500000,
				PlacementRate: 95,
			},
		},
		{
			Name:        "Mumbai University",
			Location:    "Mumbai",
			Description: "Historic university offering comprehensive education in various disciplines.",
			Courses:     []string{"Information Technology", "Commerce", "Science", "Management"},
			Fees:        75000,
			Ranking:     intPtr(3),
			Website:     "https://www.mu.ac.in",
		},
		{
			Name:        "IIT Bombay",
			Location:    "Mumbai",
			Description: "World-renowned institute for engineering and technology education.",
			Courses:     []string{"Computer Science", "Chemical Engineering", "Aerospace Engineering"},
			Fees:        220000,
			Ranking:     intPtr(4),
			Website:     "https://www.iitb.ac.in",
			PlacementStats: &appModels.PlacementStats{
				AverageSalary: 2000000,
				HighestSalary: 5000000,
				PlacementRate: 96,
			},
		},
		{
			Name:        "Bangalore University",
			Location:    "Bangalore",
			Description: "Leading university in India's tech capital with strong industry connections.",
			Courses:     []string{"Computer Applications", "Business Management", "Electronics"},
			Fees:        60000,
			Ranking:     intPtr(5),
			Website:     "https://www.bangaloreuniversity.ac.in",
		},
	}
}

// defaultAdmin is created on first boot so there is always a way into the
// admin surface. The password must be changed in any real deployment.
const (
	defaultAdminEmail    = "admin@comla.app"
	defaultAdminPassword = "comla-admin"
)

// CreateDefaultData seeds the catalog and admin account if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	collegeRepo := appRepos.NewCollegeRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	for _, college := range FallbackColleges() {
		c := college
		if _, err := collegeRepo.CreateCollege(ctx, &c); err != nil {
			if errors.Is(err, appRepos.ErrCollegeAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("name", c.Name).Msg("Error seeding college")
			finalErr = errors.Join(finalErr, err)
		}
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Name:     "Comla Admin",
		Email:    defaultAdminEmail,
		Password: hashed,
		Role:     appModels.RoleAdmin,
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil && !errors.Is(err, appRepos.ErrEmailTaken) {
		lgr.Error().Err(err).Msg("Error seeding admin user")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data in place")
	}
	return finalErr
}
