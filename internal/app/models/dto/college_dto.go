package dto

import "github.com/comla/comla/internal/app/models"

// CreateCollegeRequest is the payload for registering a new college
type CreateCollegeRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Location    string   `json:"location" binding:"required"`
	Description string   `json:"description,omitempty"`
	Courses     []string `json:"courses" binding:"required,min=1"`
	Fees        float64  `json:"fees" binding:"gte=0"`
	Ranking     *int     `json:"ranking,omitempty" binding:"omitempty,gte=1"`
	Images      []string `json:"images,omitempty"`
	Website     string   `json:"website,omitempty" binding:"omitempty,url"`
}

// UpdateCollegeRequest carries partial updates to a college listing
type UpdateCollegeRequest struct {
	Name           *string                 `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Location       *string                 `json:"location,omitempty"`
	Description    *string                 `json:"description,omitempty"`
	Courses        []string                `json:"courses,omitempty"`
	Fees           *float64                `json:"fees,omitempty" binding:"omitempty,gte=0"`
	Ranking        *int                    `json:"ranking,omitempty" binding:"omitempty,gte=1"`
	Images         []string                `json:"images,omitempty"`
	Website        *string                 `json:"website,omitempty" binding:"omitempty,url"`
	PlacementStats *models.PlacementStats  `json:"placementStats,omitempty"`
}

// SearchParams are the recognized query parameters of the search endpoint.
// Unknown parameters are ignored.
type SearchParams struct {
	Query     string   `form:"q"`
	Location  string   `form:"location"`
	Courses   []string `form:"courses"`
	MinFees   *float64 `form:"minFees"`
	MaxFees   *float64 `form:"maxFees"`
	SortBy    string   `form:"sortBy"`
	SortOrder string   `form:"sortOrder"`
	Page      int      `form:"page"`
	Limit     int      `form:"limit"`
}

// CollegeListResponse is the public listing of all colleges. Degraded is set
// when the data came from a cache snapshot or the built-in fallback set
// instead of the primary store.
type CollegeListResponse struct {
	Colleges []models.College `json:"colleges"`
	Degraded bool             `json:"degraded"`
	Source   string           `json:"source,omitempty" example:"cache"`
}

// SearchResponse is a paginated search result
type SearchResponse struct {
	Colleges   []models.College `json:"colleges"`
	Pagination PaginationInfo   `json:"pagination"`
}

// MatchRequest is an ad-hoc profile to rank colleges against, used when the
// caller wants matches without persisting profile changes.
type MatchRequest struct {
	Subjects         []SubjectInput         `json:"subjects,omitempty"`
	CompetitiveExams []CompetitiveExamInput `json:"competitiveExams,omitempty"`
	PreferredCourses []string               `json:"preferredCourses,omitempty"`
	Location         string                 `json:"location,omitempty"`
	MinBudget        *NullableFloat         `json:"minBudget,omitempty"`
	MaxBudget        *NullableFloat         `json:"maxBudget,omitempty"`
}

// MatchResponse carries the ranked matches for a profile
type MatchResponse struct {
	Colleges []models.ScoredCollege `json:"colleges"`
}
