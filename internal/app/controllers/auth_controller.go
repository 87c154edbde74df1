// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/services"
	"github.com/comla/comla/internal/middleware"
)

// AuthController handles authentication and profile operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates a new student account with the provided credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Registration information"
// @Success 201 {object} dto.SignupResponse "User registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")

	ctx.JSON(http.StatusCreated, dto.SignupResponse{
		Message: "User registered successfully",
		User:    dto.NewUserInfo(user),
	})
}

// Login handles credential verification and token issuance
// @Summary Log in
// @Description Verifies credentials and returns an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tokens, user, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Message:      "Login successful",
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.NewUserInfo(user),
	})
}

// Refresh re-issues an access token from a valid refresh token
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshResponse "New access token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Failure 404 {object} dto.ErrorResponse "Account no longer exists"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	accessToken, user, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: accessToken,
		User:        dto.NewUserInfo(user),
	})
}

// GetProfile returns the authenticated user's full profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "Profile"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	user, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{User: *user})
}

// UpdateProfile updates the authenticated user's academic profile
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to change"
// @Success 200 {object} dto.ProfileResponse "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.UpdateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().Int64("userID", userID).Msg("Profile updated")

	ctx.JSON(http.StatusOK, dto.ProfileResponse{User: *user})
}

// ToggleFavorite adds or removes a college from the user's favorites
// @Summary Toggle a favorite college
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path int true "College ID"
// @Success 200 {object} map[string][]int64 "Updated favorites"
// @Failure 400 {object} dto.ErrorResponse "Invalid college ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /profile/favorites/{id} [post]
func (c *AuthController) ToggleFavorite(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	collegeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	favorites, err := c.authService.ToggleFavorite(ctx.Request.Context(), userID, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
