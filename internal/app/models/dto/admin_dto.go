package dto

import "github.com/comla/comla/internal/app/models"

// UpdateUserRoleRequest changes an account's role
type UpdateUserRoleRequest struct {
	Role      models.Role `json:"role" binding:"required,oneof=student college admin"`
	CollegeID *int64      `json:"collegeId,omitempty" binding:"omitempty,gt=0"`
}

// UserListResponse lists all registered accounts
type UserListResponse struct {
	Users []UserInfo `json:"users"`
}

// AdminStatsResponse is a small operational snapshot of the platform
type AdminStatsResponse struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalColleges     int64 `json:"totalColleges"`
	TotalApplications int64 `json:"totalApplications"`
	PendingReviews    int64 `json:"pendingReviews"`
}
