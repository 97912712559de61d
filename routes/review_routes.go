package routes

import (
	"tourbook/internal/handlers"
	"tourbook/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes sets up routes for review functionality
func SetupReviewRoutes(r *gin.RouterGroup, reviewHandler *handlers.ReviewHandler, jwtSecret string) {
	// Public read routes
	public := r.Group("/reviews")
	{
		public.GET("/tour/:tourId", reviewHandler.ListTourReviews)
	}

	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthRequired(jwtSecret))
	{
		reviews.POST("/:id", reviewHandler.CreateReview)
		reviews.PUT("/:id", reviewHandler.UpdateReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
		reviews.POST("/:id/report", reviewHandler.ReportReview)
		reviews.POST("/:id/like", reviewHandler.ToggleLike)
		reviews.POST("/:id/reply", reviewHandler.AddReply)
		reviews.GET("/user/:userId", reviewHandler.ListUserReviews)
	}
}
