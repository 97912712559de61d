package routes

import (
	"tourbook/internal/handlers"
	"tourbook/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTourRoutes sets up routes for tour inventory functionality
func SetupTourRoutes(r *gin.RouterGroup, tourHandler *handlers.TourHandler, jwtSecret string) {
	// Public browse routes
	tours := r.Group("/tours")
	{
		tours.GET("/", tourHandler.ListTours)
		tours.GET("/:id", tourHandler.GetTour)
		tours.GET("/search/all", tourHandler.SearchTours)
		tours.GET("/featured/all", tourHandler.GetFeaturedTours)
	}

	// Inventory management, admin only
	admin := r.Group("/tours")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/", tourHandler.CreateTour)
		admin.PUT("/:id", tourHandler.UpdateTour)
		admin.DELETE("/:id", tourHandler.DeleteTour)
	}
}
