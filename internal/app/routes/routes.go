package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/scribnotes/scribnotes/internal/app/controllers"
	"github.com/scribnotes/scribnotes/internal/app/models/dto"
	"github.com/scribnotes/scribnotes/internal/middleware"
)

// SetupRouter configures all application routes. Collection reads take the
// optional auth middleware so anonymous requests resolve to an empty page;
// every write sits behind the strict one.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	termController *controllers.TermController,
	courseController *controllers.CourseController,
	classNoteController *controllers.ClassNoteController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Read routes (anonymous allowed, scoped to the principal) ---
	readable := v1.Group("")
	readable.Use(authMiddleware.OptionalJWTAuth())
	{
		readable.GET("/terms", termController.ListTerms)
		readable.GET("/terms/:termSlug/courses", courseController.ListCoursesByTerm)

		readable.GET("/courses", courseController.ListCourses)
		readable.GET("/courses/:courseSlug/notes", classNoteController.ListNotesByCourse)

		readable.GET("/notes", classNoteController.ListNotes)
		readable.GET("/notes/latest", classNoteController.ListLatestNotes)
		readable.GET("/notes/batch/:slugs", classNoteController.GetNotesBatch)
		readable.GET("/notes/:noteSlug", classNoteController.GetNote)

		readable.GET("/search", classNoteController.SearchNotes)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/users/me", authController.GetCurrentUser)

		terms := authenticated.Group("/terms")
		{
			terms.POST("", termController.CreateTerm)
			terms.PUT("/current", termController.SetCurrentTerm)
			terms.PUT("/:termSlug", termController.UpdateTerm)
			terms.DELETE("/:termSlug", termController.DeleteTerm)
			terms.POST("/:termSlug/courses", courseController.CreateCourseInTerm)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:courseSlug", courseController.UpdateCourse)
			courses.DELETE("/:courseSlug", courseController.DeleteCourse)
		}

		notes := authenticated.Group("/notes")
		{
			notes.POST("", classNoteController.CreateNote)
			notes.PUT("/:noteSlug", classNoteController.UpdateNote)
			notes.DELETE("/:noteSlug", classNoteController.DeleteNote)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
