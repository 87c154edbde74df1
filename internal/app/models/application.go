package models

import (
	"time"
)

// Application defines the application model based on the 'applications' table.
// The (student_id, college_id) pair is unique at the database level.
type Application struct {
	ID        int64             `json:"id" db:"id"`
	StudentID int64             `json:"studentId" db:"student_id"`
	CollegeID int64             `json:"collegeId" db:"college_id"`
	Status    ApplicationStatus `json:"status" db:"status" example:"pending"`
	AppliedAt time.Time         `json:"appliedAt" db:"applied_at"`
	Documents []string          `json:"documents" db:"documents"`

	// Joined display fields, populated by list queries.
	CollegeName     string `json:"collegeName,omitempty"`
	CollegeLocation string `json:"collegeLocation,omitempty"`
	StudentName     string `json:"studentName,omitempty"`
	StudentEmail    string `json:"studentEmail,omitempty"`
}
