package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/app/models/dto"
	"github.com/comla/comla/internal/app/services"
	"github.com/comla/comla/internal/middleware"
	"github.com/comla/comla/internal/pkg/filestorage"
)

// maxApplicationDocuments caps the file parts accepted per submission.
const maxApplicationDocuments = 5

// ApplicationController handles application lifecycle endpoints
type ApplicationController struct {
	applicationService services.ApplicationService
	authService        services.AuthService
	storage            filestorage.FileStorage
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, authService services.AuthService, storage filestorage.FileStorage, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		authService:        authService,
		storage:            storage,
		logger:             logger,
	}
}

// Apply submits a new application with optional supporting documents
// @Summary Apply to a college
// @Description Submits an application in pending state. Documents ride along as multipart file parts, up to 5 files of 5 MB each.
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param collegeId formData int true "College ID"
// @Param documents formData file false "Supporting documents (pdf, jpg, jpeg, png)"
// @Success 201 {object} dto.ApplicationResponse "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or duplicate application"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	collegeID, err := strconv.ParseInt(ctx.PostForm("collegeId"), 10, 64)
	if err != nil || collegeID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "collegeId is required").WithField("collegeId")))
		return
	}

	documents, ok := c.saveDocuments(ctx)
	if !ok {
		return
	}

	app, err := c.applicationService.Apply(ctx.Request.Context(), studentID, collegeID, documents)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", studentID).
		Int64("collegeID", collegeID).
		Msg("Application submitted")

	ctx.JSON(http.StatusCreated, dto.ApplicationResponse{
		Message:     "Application submitted successfully",
		Application: *app,
	})
}

// saveDocuments stores the uploaded file parts and returns their accessible
// paths. It writes the error response itself on failure.
func (c *ApplicationController) saveDocuments(ctx *gin.Context) ([]string, bool) {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil, true // No files attached
	}

	files := form.File["documents"]
	if len(files) > maxApplicationDocuments {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "At most 5 documents are allowed").WithField("documents")))
		return nil, false
	}

	documents := make([]string, 0, len(files))
	for _, file := range files {
		path, err := c.storage.SaveFileWithPath(file, "documents")
		if err != nil {
			c.logger.Warn().Err(err).Str("filename", file.Filename).Msg("Rejected application document")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).WithField("documents")))
			return nil, false
		}
		documents = append(documents, path)
	}

	return documents, true
}

// ListMine lists the authenticated student's applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse "Applications"
// @Router /applications [get]
func (c *ApplicationController) ListMine(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	apps, err := c.applicationService.ListForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ApplicationListResponse{Applications: apps})
}

// ListReceived lists applications received by the caller's college
// @Summary List received applications
// @Description Lists the applications submitted to the college the caller manages
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse "Applications"
// @Failure 403 {object} dto.ErrorResponse "College role required"
// @Router /applications/received [get]
func (c *ApplicationController) ListReceived(ctx *gin.Context) {
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

	if user.Role != models.RoleCollege || user.CollegeID == nil {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only college accounts can list received applications")))
		return
	}

	apps, err := c.applicationService.ListForCollege(ctx.Request.Context(), *user.CollegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ApplicationListResponse{Applications: apps})
}

// Withdraw deletes an application owned by the caller
// @Summary Withdraw an application
// @Description Removes the application regardless of its current status. The student may re-apply afterwards.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.MessageResponse "Withdrawn"
// @Failure 403 {object} dto.ErrorResponse "Not your application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id} [delete]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.applicationService.Withdraw(ctx.Request.Context(), studentID, applicationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", applicationID).Int64("studentID", studentID).Msg("Application withdrawn")

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Application withdrawn successfully"})
}

// SetStatus records the decision on an application
// @Summary Decide on an application
// @Description Sets the application status. Allowed for the college that received it and for admins. The applicant is notified by email on a best-effort basis.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.ApplicationResponse "Updated application"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to decide"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) SetStatus(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	caller, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	app, err := c.applicationService.SetStatus(ctx.Request.Context(), caller, applicationID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("applicationID", applicationID).
		Str("status", string(app.Status)).
		Int64("decidedBy", userID).
		Msg("Application status updated")

	ctx.JSON(http.StatusOK, dto.ApplicationResponse{
		Message:     "Application status updated",
		Application: *app,
	})
}
