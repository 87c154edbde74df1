package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/services"
	"github.com/comla/comla/internal/middleware"
)

// AdminController handles platform administration endpoints
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListUsers returns every registered account
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse "Users"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.adminService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserListResponse{Users: users})
}

// UpdateUserRole changes an account's role
// @Summary Change a user's role
// @Description Promotes or demotes an account. The college role requires the college the account will manage.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.MessageResponse "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [put]
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.adminService.UpdateUserRole(ctx.Request.Context(), userID, req.Role, req.CollegeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Str("role", string(req.Role)).Msg("User role updated")

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User role updated successfully"})
}

// DeleteUser removes an account
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageResponse "User deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("User deleted")

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// ListApplications returns every application across the platform
// @Summary List all applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse "Applications"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/applications [get]
func (c *AdminController) ListApplications(ctx *gin.Context) {
	apps, err := c.adminService.ListApplications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ApplicationListResponse{Applications: apps})
}

// Stats returns platform totals for the admin dashboard
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminStatsResponse "Totals"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
