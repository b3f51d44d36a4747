package routes

import (
	"rentride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up routes for quotes and the booking lifecycle
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, authRequired gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(authRequired)
	{
		bookings.GET("/quote", bookingHandler.GetQuote)
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/status", bookingHandler.SetBookingStatus)
		bookings.PUT("/:id/dates", bookingHandler.EditBooking)
		bookings.DELETE("/:id", bookingHandler.CancelBooking)
	}

	mine := r.Group("/my/bookings")
	mine.Use(authRequired)
	{
		mine.GET("", bookingHandler.GetMyBookings)
		mine.GET("/received", bookingHandler.GetOwnerBookings)
	}
}
