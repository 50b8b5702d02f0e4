package routes

import (
	"journal-management-api/controllers"
	"journal-management-api/middleware"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Token-credential endpoints: the emailed token is the only
			// credential, co-authors and reviewers may not have accounts.
			public.POST("/submissions/:id/coauthors/:coauthor_id/consent", controllers.ProcessCoAuthorConsent)
			public.POST("/review-invitations/:token", controllers.RespondReviewerInvitation)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.GET("/:id/status-history", controllers.GetStatusHistory)

				// Authoring
				submissions.POST("", middleware.RequireRole(models.RoleAuthor), controllers.CreateSubmission)
				submissions.PUT("/:id", controllers.UpdateSubmission)
				submissions.PUT("/:id/checklist", controllers.SaveChecklist)
				submissions.PUT("/:id/declarations", controllers.SaveDeclarations)
				submissions.POST("/:id/submit", controllers.SubmitSubmission)

				// Co-authors and consent
				submissions.POST("/:id/coauthors", controllers.AddCoAuthor)
				submissions.PUT("/:id/coauthors/:coauthor_id", controllers.UpdateCoAuthor)
				submissions.DELETE("/:id/coauthors/:coauthor_id", controllers.RemoveCoAuthor)
				submissions.POST("/:id/coauthors/:coauthor_id/consent-request", controllers.RequestCoAuthorConsent)
				submissions.GET("/:id/consent-status", controllers.GetConsentStatus)

				// Suggested reviewers
				submissions.POST("/:id/reviewers", controllers.AddSuggestedReviewer)
				submissions.DELETE("/:id/reviewers/:reviewer_id", controllers.RemoveSuggestedReviewer)
				submissions.GET("/:id/review-gate", controllers.GetReviewGateStatus)

				// Files
				submissions.POST("/:id/documents", controllers.UploadDocument)
				submissions.GET("/:id/documents", controllers.GetDocuments)
				submissions.GET("/:id/documents/:file_id", controllers.DownloadDocument)
				submissions.DELETE("/:id/documents/:file_id", controllers.DeleteDocument)

				// Revisions
				submissions.POST("/:id/revisions", controllers.SubmitRevision)
				submissions.GET("/:id/versions", controllers.GetManuscriptVersions)

				// Reviewer feedback
				submissions.POST("/:id/feedback", middleware.RequireRole(models.RoleReviewer), controllers.SubmitReviewerFeedback)

				// Technical editing
				submissions.POST("/:id/tech-decision", middleware.RequireRole(models.RoleTechnicalEditor), controllers.MakeTechnicalEditorDecision)

				// Editorial staff
				editorial := submissions.Group("")
				editorial.Use(middleware.RequireRole(models.RoleEditor))
				{
					editorial.PUT("/:id/status", controllers.UpdateStatus)
					editorial.PUT("/:id/payment-status", controllers.UpdatePaymentStatus)
					editorial.PUT("/:id/internal-notes", controllers.UpdateInternalNotes)
					editorial.POST("/:id/assign-editor", controllers.AssignEditor)
					editorial.POST("/:id/assign-technical-editors", controllers.AssignTechnicalEditors)
					editorial.POST("/:id/assign-reviewers", controllers.AssignReviewers)
					editorial.POST("/:id/reviewers/:reviewer_id/invite", controllers.SendReviewerInvitation)
					editorial.PUT("/:id/reviewers/:reviewer_id/approve", controllers.ApproveSuggestedReviewer)
					editorial.POST("/:id/move-to-review", controllers.MoveToReview)
					editorial.POST("/:id/decision", controllers.MakeEditorDecision)
				}
			}
		}
	}
}
