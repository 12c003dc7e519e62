package routes

import (
	"journal-review-api/controllers"
	"journal-review-api/middleware"
	"journal-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		public := api.Group("")
		{
			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Review API is running",
				})
			})

			// Authentication
			public.POST("/auth/register", controllers.Register)
			public.POST("/auth/login", controllers.Login)

			// Public paper browsing (use ?status=published for the archive)
			public.GET("/papers", controllers.GetPapers)
			public.GET("/papers/:id", controllers.GetPaper)

			// Issues and their tables of contents
			public.GET("/issues", controllers.GetIssues)
			public.GET("/issues/:id/papers", controllers.GetIssuePapers)

			// Submission form allows anonymous authors
			public.POST("/submissions", controllers.SubmitPaper)

			// Payment gateway checkout
			public.GET("/payments/key", controllers.GetPaymentKey)
			public.POST("/payments/create-order", controllers.CreatePaymentOrder)
			public.POST("/payments/verify-payment", controllers.VerifyPayment)
		}

		// Protected routes (require authentication)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Structured paper creation
			protected.POST("/papers", controllers.CreatePaper)

			// Revision upload by the authenticated author
			protected.POST("/submissions/:paperId/revision", controllers.UploadRevision)

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("/reviewer/:reviewerId", controllers.GetReviewsByReviewer)
				reviews.GET("/paper/:paperId", controllers.GetReviewsByPaper)
				reviews.POST("", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.SubmitReview)
			}

			// Notifications (always scoped to the authenticated user)
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.POST("/:id/read", controllers.MarkNotificationRead)
				notifications.DELETE("/:id", controllers.DeleteNotification)
			}

			// Editorial staff only
			editorial := protected.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
			{
				admin := editorial.Group("/admin")
				{
					admin.GET("/reviewers", controllers.GetReviewers)
					admin.GET("/papers", controllers.GetPapersWithReviewCounts)
					admin.POST("/assign-reviewer", controllers.AssignReviewer)
					admin.POST("/publish-paper", controllers.PublishPaper)
					admin.POST("/request-revisions", controllers.RequestRevisions)
					admin.POST("/reject-paper", controllers.RejectPaper)
				}

				editorial.POST("/issues", controllers.CreateIssue)
				editorial.POST("/issues/:id/set-current", controllers.SetCurrentIssue)
				editorial.POST("/issues/:id/assign-paper", controllers.AssignPaperToIssue)
				editorial.DELETE("/issues/:id/assign-paper/:paperId", controllers.UnassignPaperFromIssue)
				editorial.DELETE("/issues/:id", controllers.DeleteIssue)
				editorial.GET("/issue-assignments", controllers.GetIssueAssignments)
			}
		}
	}
}
