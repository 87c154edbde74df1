package models

import (
	"time"
)

// DefaultCollegeImage is served for colleges without an uploaded image.
const DefaultCollegeImage = "https://res.cloudinary.com/dytimzerg/image/upload/v1698765432/colleges/default-college.jpg"

// PlacementStats summarizes placement outcomes for a college.
type PlacementStats struct {
	AverageSalary float64 `json:"averageSalary"`
	HighestSalary float64 `json:"highestSalary"`
	PlacementRate float64 `json:"placementRate"` // percentage
}

// Review is a user-submitted rating of a college.
type Review struct {
	User    string    `json:"user"`
	Rating  int       `json:"rating"` // 1-5
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// College defines the college model based on the 'colleges' table.
// Ranking is the national ranking, lower is better; it is used as an
// ascending sort key and feeds the match-score bonus.
type College struct {
	ID             int64           `json:"id" db:"id" example:"1"`
	Name           string          `json:"name" db:"name" example:"Delhi University"`
	Images         []string        `json:"images" db:"images"`
	Description    string          `json:"description" db:"description"`
	Location       string          `json:"location" db:"location" example:"Delhi"`
	Courses        []string        `json:"courses" db:"courses"`
	Website        string          `json:"website" db:"website"`
	Fees           float64         `json:"fees" db:"fees" example:"50000"`
	PlacementStats *PlacementStats `json:"placementStats,omitempty" db:"placement_stats"`
	Reviews        []Review        `json:"reviews" db:"reviews"`
	Ranking        *int            `json:"ranking,omitempty" db:"ranking"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// ScoredCollege is a college annotated with its match score for one profile.
type ScoredCollege struct {
	College
	MatchScore int `json:"matchScore"`
}
