package routes

import (
	"rentride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up routes for authentication and profile management
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, authRequired gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/google", authHandler.GoogleLogin)
		auth.POST("/firebase", authHandler.FirebaseLogin)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	protected := r.Group("/auth")
	protected.Use(authRequired)
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)
	}
}
