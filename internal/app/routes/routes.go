package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coursehub/regportal/internal/app/controllers"
	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	registrationController *controllers.RegistrationController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	// The intake form posts here without authentication.
	v1.POST("/registrations", registrationController.Submit)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.GET("/students/me", studentController.MyProfile)

		// Staff-only routes
		staff := authenticated.Group("")
		staff.Use(authMiddleware.RoleRequired(string(models.RoleStaff)))
		{
			registrations := staff.Group("/registrations")
			{
				registrations.GET("", registrationController.Search)
				registrations.GET("/export", registrationController.ExportCSV)
				registrations.GET("/:id", registrationController.GetByID)
				registrations.POST("/:id/provision", registrationController.Provision)
			}

			students := staff.Group("/students")
			{
				students.POST("", studentController.Create)
				students.GET("", studentController.List)
				students.PUT("/:id", studentController.Update)
			}
		}
	}
}
