package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared sentinel for missing rows. Callers translate it
// into the resource-specific error of their layer.
var ErrNotFound = errors.New("resource not found")

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	CollegeRepository     *CollegeRepository
	ApplicationRepository *ApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		CollegeRepository:     NewCollegeRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
	}
}
