// Package models defines the database-backed domain entities.
package models

// Role identifies what a user account is allowed to do.
type Role string

const (
	RoleStudent Role = "student"
	RoleCollege Role = "college"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCollege, RoleAdmin:
		return true
	}
	return false
}

// ApplicationStatus is the lifecycle state of an application.
// Applications start in pending and move to accepted or rejected.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// IsValid reports whether the status is one of the known states.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
