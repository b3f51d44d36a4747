package routes

import (
	"rentride/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes sets up the realtime endpoint. Browsers cannot set
// headers on websocket dials, so the auth middleware also accepts the token
// as a query parameter.
func SetupWebSocketRoutes(r *gin.RouterGroup, wsHandler *websocket.Handler, authRequired gin.HandlerFunc) {
	r.GET("/ws", authRequired, wsHandler.HandleWebSocket)
}
