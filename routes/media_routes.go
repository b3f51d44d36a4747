package routes

import (
	"rentride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMediaRoutes sets up routes for file uploads
func SetupMediaRoutes(r *gin.RouterGroup, mediaHandler *handlers.MediaHandler, authRequired gin.HandlerFunc) {
	media := r.Group("/media")
	media.Use(authRequired)
	{
		media.POST("/images", mediaHandler.UploadImage)
		media.POST("/audio", mediaHandler.UploadAudio)
		media.DELETE("", mediaHandler.DeleteMedia)
	}
}
