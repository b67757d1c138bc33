package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kesher-org/kesher-backend/internal/app/controllers"
	"github.com/kesher-org/kesher-backend/internal/app/models/dto"
	"github.com/kesher-org/kesher-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	volunteerController *controllers.VolunteerController,
	matchController *controllers.MatchController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.POST("", studentController.CreateStudent)
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
		}

		volunteers := authenticated.Group("/volunteers")
		{
			volunteers.POST("", volunteerController.CreateVolunteer)
			volunteers.GET("", volunteerController.GetAllVolunteers)
			volunteers.GET("/:id", volunteerController.GetVolunteerByID)
			volunteers.DELETE("/:id", volunteerController.DeactivateVolunteer)
		}

		matches := authenticated.Group("/matches")
		{
			matches.GET("", matchController.GetAllMatches)
			matches.GET("/:id", matchController.GetMatchByID)
			matches.GET("/:id/notifications", matchController.GetMatchNotifications)
			matches.POST("/generate", matchController.GenerateMatches)
			matches.POST("/status", matchController.UpdateMatchStatus)
			matches.POST("/status/batch", matchController.UpdateMatchStatusBatch)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
