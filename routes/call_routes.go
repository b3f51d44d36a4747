package routes

import (
	"rentride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupCallRoutes sets up routes for call signaling
func SetupCallRoutes(r *gin.RouterGroup, callHandler *handlers.CallHandler, authRequired gin.HandlerFunc) {
	calls := r.Group("/calls")
	calls.Use(authRequired)
	{
		calls.POST("", callHandler.StartCall)
		calls.GET("/incoming", callHandler.GetIncomingCalls)
		calls.DELETE("/:id", callHandler.EndCall)
	}
}
