package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/services"
	"github.com/comla/comla/internal/middleware"
	"github.com/comla/comla/internal/pkg/helpers"
)

// CollegeController handles catalog, search and matching endpoints
type CollegeController struct {
	collegeService services.CollegeService
	logger         zerolog.Logger
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService services.CollegeService, logger zerolog.Logger) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
		logger:         logger,
	}
}

// ListColleges returns the public catalog
// @Summary List all colleges
// @Description Returns the full catalog. Degraded responses are served from cache or a built-in fallback when the database is down.
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.CollegeListResponse "College catalog"
// @Router /colleges [get]
func (c *CollegeController) ListColleges(ctx *gin.Context) {
	resp, err := c.collegeService.ListColleges(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if resp.Degraded {
		c.logger.Warn().Str("source", resp.Source).Msg("Serving degraded college catalog")
	}

	ctx.JSON(http.StatusOK, resp)
}

// SearchColleges runs a filtered, paginated catalog query
// @Summary Search colleges
// @Description Filters by free-text query, location, courses and fee range. Unknown parameters are ignored.
// @Tags colleges
// @Produce json
// @Param q query string false "Free-text search over name, location and description"
// @Param location query string false "Location substring filter"
// @Param courses query []string false "Courses, any overlap matches"
// @Param minFees query number false "Minimum fees"
// @Param maxFees query number false "Maximum fees"
// @Param sortBy query string false "Sort column: name, location or fees"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size, max 100"
// @Success 200 {object} dto.SearchResponse "Matching colleges"
// @Failure 503 {object} dto.ErrorResponse "Search backend unavailable"
// @Router /colleges/search [get]
func (c *CollegeController) SearchColleges(ctx *gin.Context) {
	params := parseSearchParams(ctx)

	resp, err := c.collegeService.SearchColleges(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// parseSearchParams collects the recognized search query parameters.
// Malformed numeric values are treated as absent.
func parseSearchParams(ctx *gin.Context) dto.SearchParams {
	params := dto.SearchParams{
		Query:     strings.TrimSpace(ctx.Query("q")),
		Location:  strings.TrimSpace(ctx.Query("location")),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}

	if raw := ctx.Query("courses"); raw != "" {
		for _, course := range strings.Split(raw, ",") {
			if course = strings.TrimSpace(course); course != "" {
				params.Courses = append(params.Courses, course)
			}
		}
	}

	if raw := ctx.Query("minFees"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.MinFees = &v
		}
	}
	if raw := ctx.Query("maxFees"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.MaxFees = &v
		}
	}

	params.Page, params.Limit = helpers.ParsePaginationParams(ctx)

	return params
}

// GetCollege returns one college by ID
// @Summary Get a college
// @Tags colleges
// @Produce json
// @Param id path int true "College ID"
// @Success 200 {object} models.College "College"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id} [get]
func (c *CollegeController) GetCollege(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	college, err := c.collegeService.GetCollege(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, college)
}

// CreateCollege registers a new college listing
// @Summary Create a college
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCollegeRequest true "College information"
// @Success 201 {object} models.College "Created college"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 409 {object} dto.ErrorResponse "College already exists"
// @Router /colleges [post]
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	var req dto.CreateCollegeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	college, err := c.collegeService.CreateCollege(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("collegeID", college.ID).Str("name", college.Name).Msg("College created")

	ctx.JSON(http.StatusCreated, college)
}

// UpdateCollege applies partial changes to a listing
// @Summary Update a college
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "College ID"
// @Param request body dto.UpdateCollegeRequest true "Fields to change"
// @Success 200 {object} models.College "Updated college"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id} [put]
func (c *CollegeController) UpdateCollege(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCollegeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	college, err := c.collegeService.UpdateCollege(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, college)
}

// DeleteCollege removes a listing
// @Summary Delete a college
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "College ID"
// @Success 200 {object} dto.MessageResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id} [delete]
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.collegeService.DeleteCollege(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "College deleted successfully"})
}

// MatchForUser ranks colleges against a stored student profile
// @Summary Get matches for a student
// @Description Scores the catalog against the student's saved profile and returns the top matches
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Student user ID"
// @Success 200 {object} dto.MatchResponse "Ranked matches"
// @Failure 403 {object} dto.ErrorResponse "Not your profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /colleges/filter/{userId} [get]
func (c *CollegeController) MatchForUser(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	// Students may only request their own matches; admins can look at anyone.
	callerID, _ := middleware.CurrentUserID(ctx)
	role, _ := middleware.CurrentRole(ctx)
	if callerID != targetID && role != models.RoleAdmin {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You can only request your own matches")))
		return
	}

	colleges, err := c.collegeService.MatchForUser(ctx.Request.Context(), targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MatchResponse{Colleges: colleges})
}

// MatchForProfile ranks colleges against an ad-hoc profile
// @Summary Get matches for an ad-hoc profile
// @Description Scores the catalog against profile fields sent in the body without saving them
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MatchRequest true "Profile to match"
// @Success 200 {object} dto.MatchResponse "Ranked matches"
// @Router /colleges/filter [post]
func (c *CollegeController) MatchForProfile(ctx *gin.Context) {
	var req dto.MatchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile := models.MatchProfile{
		PreferredCourses: req.PreferredCourses,
		Location:         req.Location,
	}
	if req.MinBudget != nil {
		profile.MinBudget = req.MinBudget.Value
	}
	if req.MaxBudget != nil {
		profile.MaxBudget = req.MaxBudget.Value
	}

	colleges, err := c.collegeService.MatchForProfile(ctx.Request.Context(), profile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MatchResponse{Colleges: colleges})
}
