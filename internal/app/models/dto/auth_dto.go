package dto

import "github.com/comla/comla/internal/app/models"

// SignupRequest represents the registration payload
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Asha Verma"`
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest carries the refresh token presented for rotation
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserInfo is the public projection of a user account
type UserInfo struct {
	ID        int64        `json:"id" example:"42"`
	Name      string       `json:"name" example:"Asha Verma"`
	Email     string       `json:"email" example:"asha@example.com"`
	Role      models.Role  `json:"role" example:"student"`
	CollegeID *int64       `json:"collegeId,omitempty"`
}

// NewUserInfo maps a user model to its public projection
func NewUserInfo(u *models.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CollegeID: u.CollegeID,
	}
}

// SignupResponse is returned after successful registration
type SignupResponse struct {
	Message string   `json:"message" example:"User registered successfully"`
	User    UserInfo `json:"user"`
}

// LoginResponse carries the fresh token pair and the account projection
type LoginResponse struct {
	Message      string   `json:"message" example:"Login successful"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         UserInfo `json:"user"`
}

// RefreshResponse carries the re-issued access token
type RefreshResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}
