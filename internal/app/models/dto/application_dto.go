package dto

import "github.com/comla/comla/internal/app/models"

// ApplyRequest is the multipart form payload for submitting an application.
// Supporting documents ride alongside as file parts.
type ApplyRequest struct {
	CollegeID int64 `form:"collegeId" binding:"required,gt=0"`
}

// UpdateApplicationStatusRequest sets the decision on an application
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=pending accepted rejected"`
}

// ApplicationResponse is returned after a successful submission
type ApplicationResponse struct {
	Message     string             `json:"message" example:"Application submitted successfully"`
	Application models.Application `json:"application"`
}

// ApplicationListResponse lists applications for a student or a college
type ApplicationListResponse struct {
	Applications []models.Application `json:"applications"`
}
