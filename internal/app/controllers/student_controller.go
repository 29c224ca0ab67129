package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appauth "github.com/coursehub/regportal/internal/app/auth"
	"github.com/coursehub/regportal/internal/app/models/dto"
	"github.com/coursehub/regportal/internal/app/services"
	"github.com/coursehub/regportal/internal/middleware"
)

// StudentController handles staff management of student accounts and the
// student's own profile view
type StudentController struct {
	studentService services.StudentService
	authzService   *appauth.AuthorizationService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	authzService *appauth.AuthorizationService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		studentService: studentService,
		authzService:   authzService,
		logger:         logger,
	}
}

// Create makes a student account and profile directly.
func (c *StudentController) Create(ctx *gin.Context) {
	actor, ok := c.staffActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student creation payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.studentService.CreateStudent(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user))
}

// Update modifies a student account and its profile.
func (c *StudentController) Update(ctx *gin.Context) {
	actor, ok := c.staffActor(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student update payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.studentService.UpdateStudent(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(user, "Student updated successfully."))
}

// List returns all student accounts with their profiles.
func (c *StudentController) List(ctx *gin.Context) {
	actor, ok := c.staffActor(ctx)
	if !ok {
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), actor)
	if err != nil {
		c.logger.Error().Err(err).Msg("Student listing failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// MyProfile returns the authenticated student's own profile.
func (c *StudentController) MyProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.studentService.GetOwnProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

func (c *StudentController) staffActor(ctx *gin.Context) (appauth.StaffActor, bool) {
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
