package routes

import (
	"rentride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupVehicleRoutes sets up routes for the vehicle catalog
func SetupVehicleRoutes(r *gin.RouterGroup, vehicleHandler *handlers.VehicleHandler, authRequired gin.HandlerFunc) {
	vehicles := r.Group("/vehicles")
	{
		// Browsing the catalog is public
		vehicles.GET("", vehicleHandler.SearchVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
	}

	protected := r.Group("/vehicles")
	protected.Use(authRequired)
	{
		protected.POST("", vehicleHandler.CreateVehicle)
		protected.PUT("/:id", vehicleHandler.UpdateVehicle)
		protected.DELETE("/:id", vehicleHandler.DeleteVehicle)
	}

	mine := r.Group("/my/vehicles")
	mine.Use(authRequired)
	{
		mine.GET("", vehicleHandler.GetMyVehicles)
	}
}
