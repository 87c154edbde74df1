package dto

import "github.com/comla/comla/internal/app/models"

// SubjectInput is one subject with the marks obtained in it
type SubjectInput struct {
	Name  string  `json:"name" binding:"required"`
	Marks float64 `json:"marks" binding:"gte=0"`
}

// CompetitiveExamInput is one exam attempt with the rank achieved
type CompetitiveExamInput struct {
	Exam string `json:"exam" binding:"required"`
	Rank int    `json:"rank" binding:"gte=0"`
}

// UpdateProfileRequest carries the academic profile fields a student may
// change. Omitted fields are left untouched.
type UpdateProfileRequest struct {
	Name             *string                `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Subjects         []SubjectInput         `json:"subjects,omitempty"`
	CompetitiveExams []CompetitiveExamInput `json:"competitiveExams,omitempty"`
	PreferredCourses []string               `json:"preferredCourses,omitempty"`
	Location         *string                `json:"location,omitempty"`
	MinBudget        *NullableFloat         `json:"minBudget,omitempty"`
	MaxBudget        *NullableFloat         `json:"maxBudget,omitempty"`
}

// ProfileResponse is the full profile of the authenticated user
type ProfileResponse struct {
	User models.User `json:"user"`
}
