package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeAudio MessageType = "audio"
	MessageTypeCall  MessageType = "call"
)

// Message rows are append-only; they are never edited or deleted. Ordering
// is by the server-assigned CreatedAt, never by client clocks.
type Message struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChatID   string             `json:"chat_id" bson:"chat_id" validate:"required"`
	SenderID primitive.ObjectID `json:"sender_id" bson:"sender_id" validate:"required"`
	Type     MessageType        `json:"type" bson:"type" default:"text"`

	// Raw text for type=text and type=call; an already-uploaded media URL
	// for type=image and type=audio.
	Content string `json:"content" bson:"content"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type SendMessageRequest struct {
	Content string      `json:"content" validate:"required"`
	Type    MessageType `json:"type"`
}
