package models

import (
	"time"
)

// Subject is a school subject with the mark the student scored in it.
type Subject struct {
	Name  string  `json:"name"`
	Marks float64 `json:"marks"`
}

// CompetitiveExam records a student's rank in a national entrance exam.
type CompetitiveExam struct {
	Exam string `json:"exam"`
	Rank int    `json:"rank"`
}

// User defines the user model based on the 'users' table.
// Profile fields (subjects, exams, courses, budget) only carry meaning for
// student accounts; CollegeID is set only when role is college.
type User struct {
	ID               int64             `json:"id" db:"id" example:"1"`
	Name             string            `json:"name" db:"name" example:"Asha Verma"`
	Email            string            `json:"email" db:"email" example:"asha@example.com"`
	Password         string            `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role             Role              `json:"role" db:"role" example:"student"`
	CollegeID        *int64            `json:"collegeId,omitempty" db:"college_id"`
	Subjects         []Subject         `json:"subjects" db:"subjects"`
	CompetitiveExams []CompetitiveExam `json:"competitiveExams" db:"competitive_exams"`
	PreferredCourses []string          `json:"preferredCourses" db:"preferred_courses"`
	Location         string            `json:"location" db:"location" example:"Delhi"`
	MinBudget        *float64          `json:"minBudget,omitempty" db:"min_budget"`
	MaxBudget        *float64          `json:"maxBudget,omitempty" db:"max_budget"`
	Documents        []string          `json:"documents" db:"documents"`
	Favorites        []int64           `json:"favorites" db:"favorites"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time         `json:"updatedAt" db:"updated_at"`
}

// MatchProfile is the slice of a user profile the ranking engine scores against.
type MatchProfile struct {
	PreferredCourses []string
	Location         string
	MinBudget        *float64
	MaxBudget        *float64
}

// Profile extracts the matching-relevant fields of the user.
func (u *User) Profile() MatchProfile {
	return MatchProfile{
		PreferredCourses: u.PreferredCourses,
		Location:         u.Location,
		MinBudget:        u.MinBudget,
		MaxBudget:        u.MaxBudget,
	}
}
