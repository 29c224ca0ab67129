package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appauth "github.com/coursehub/regportal/internal/app/auth"
	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/app/models/dto"
	"github.com/coursehub/regportal/internal/app/services"
	"github.com/coursehub/regportal/internal/middleware"
)

// RegistrationController handles intake submissions and staff review of them
type RegistrationController struct {
	registrationService services.RegistrationService
	studentService      services.StudentService
	exportService       services.ExportService
	authzService        *appauth.AuthorizationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(
	registrationService services.RegistrationService,
	studentService services.StudentService,
	exportService services.ExportService,
	authzService *appauth.AuthorizationService,
	logger zerolog.Logger,
) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		studentService:      studentService,
		exportService:       exportService,
		authzService:        authzService,
		logger:              logger,
	}
}

// Submit accepts a public intake form submission.
func (c *RegistrationController) Submit(ctx *gin.Context) {
	var req dto.SubmitRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reg, err := c.registrationService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("registrationID", reg.ID).
		Str("email", reg.Email).
		Msg("Registration submitted")

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse(reg, "Registration submitted successfully."))
}

// Search lists registrations matching the query, status and batch filters.
func (c *RegistrationController) Search(ctx *gin.Context) {
	filter := models.RegistrationFilter{
		Query:  ctx.Query("q"),
		Status: ctx.Query("status"),
		Batch:  ctx.Query("batch"),
	}

	regs, err := c.registrationService.Search(ctx.Request.Context(), filter)
	if err != nil {
		c.logger.Error().Err(err).Msg("Registration search failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.RegistrationListResponse{
		Registrations: regs,
		Total:         len(regs),
	}))
}

// GetByID returns one registration in full.
func (c *RegistrationController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	reg, err := c.registrationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(reg))
}

// Provision converts a registration into a student account.
func (c *RegistrationController) Provision(ctx *gin.Context) {
	actor, ok := c.staffActor(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.ProvisionCredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid provision payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, alreadyProvisioned, err := c.studentService.Provision(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if alreadyProvisioned {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse(user, "Registration already provisioned."))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse(user, "Student account provisioned."))
}

// ExportCSV streams the filtered registration set as a CSV attachment.
func (c *RegistrationController) ExportCSV(ctx *gin.Context) {
	filter := models.RegistrationFilter{
		Query:  ctx.Query("q"),
		Status: ctx.Query("status"),
		Batch:  ctx.Query("batch"),
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ExportFilename))

	if err := c.exportService.WriteRegistrationsCSV(ctx.Request.Context(), ctx.Writer, filter); err != nil {
		c.logger.Error().Err(err).Msg("Registration export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
}

// staffActor authorizes the authenticated user for admin operations.
func (c *RegistrationController) staffActor(ctx *gin.Context) (appauth.StaffActor, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return appauth.StaffActor{}, false
	}

	actor, err := c.authzService.AuthorizeStaff(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return appauth.StaffActor{}, false
	}
	return actor, true
}

// pathID parses the :id path parameter.
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
