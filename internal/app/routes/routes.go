package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/comla/comla/internal/app/controllers"
	"github.com/comla/comla/internal/app/models"
	"github.com/comla/comla/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	applicationController *controllers.ApplicationController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Public College routes ---
	colleges := v1.Group("/colleges")
	{
		colleges.GET("", collegeController.ListColleges)
		colleges.GET("/search", collegeController.SearchColleges)
		colleges.GET("/:id", collegeController.GetCollege)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile routes
		profile := authenticated.Group("/profile")
		{
			profile.GET("", authController.GetProfile)
			profile.PUT("", authController.UpdateProfile)
			profile.POST("/favorites/:id", authController.ToggleFavorite)
		}

		// Match routes
		collegesProtected := authenticated.Group("/colleges")
		{
			collegesProtected.GET("/filter/:userId", collegeController.MatchForUser)
			collegesProtected.POST("/filter", collegeController.MatchForProfile)
		}

		// College management, admin only
		collegesAdmin := authenticated.Group("/colleges")
		collegesAdmin.Use(authMiddleware.AdminRequired())
		{
			collegesAdmin.POST("", collegeController.CreateCollege)
			collegesAdmin.PUT("/:id", collegeController.UpdateCollege)
			collegesAdmin.DELETE("/:id", collegeController.DeleteCollege)
		}

		// Application routes
		applications := authenticated.Group("/applications")
		{
			applications.POST("", applicationController.Apply)
			applications.GET("", applicationController.ListMine)
			applications.DELETE("/:id", applicationController.Withdraw)

			// Decision routes for colleges and admins
			applications.GET("/received",
				authMiddleware.RoleRequired(models.RoleCollege, models.RoleAdmin),
				applicationController.ListReceived)
			applications.PUT("/:id/status",
				authMiddleware.RoleRequired(models.RoleCollege, models.RoleAdmin),
				applicationController.SetStatus)
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/role", adminController.UpdateUserRole)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.GET("/applications", adminController.ListApplications)
			admin.GET("/stats", adminController.Stats)
		}
	}
}
