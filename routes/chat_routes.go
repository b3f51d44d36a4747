package routes

import (
	"rentride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes sets up routes for conversations and messages
func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler, authRequired gin.HandlerFunc) {
	chats := r.Group("/chats")
	chats.Use(authRequired)
	{
		chats.POST("", chatHandler.EnsureChat)
		chats.GET("", chatHandler.GetMyChats)
		chats.POST("/:id/messages", chatHandler.SendMessage)
		chats.GET("/:id/messages", chatHandler.GetMessages)
		chats.POST("/call-log", chatHandler.LogCall)
	}
}
