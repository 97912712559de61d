package routes

import (
	"tourbook/internal/handlers"
	"tourbook/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up routes for booking functionality
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("/", bookingHandler.CreateBooking)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.GET("/user/:userId", bookingHandler.ListUserBookings)
	}

	admin := r.Group("/bookings")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", bookingHandler.ListBookings)
	}
}
