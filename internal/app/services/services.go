// Package services holds the business logic between the HTTP controllers
// and the repositories.
package services

// Services holds all the service instances
type Services struct {
	AuthService        AuthService
	CollegeService     CollegeService
	ApplicationService ApplicationService
	AdminService       AdminService
}
