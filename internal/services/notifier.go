package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notifier pushes real-time events to connected clients. Implemented by
// the websocket handler; a nil Notifier silently drops events, which is
// what tests want.
type Notifier interface {
	SendChatEvent(chatID string, eventType string, data map[string]interface{})
	SendUserEvent(userID primitive.ObjectID, eventType string, data map[string]interface{})
}
