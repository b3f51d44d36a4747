package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is keyed by the deterministic id formed from its two participants
// (sorted, joined with "_"), so both sides resolve the same conversation
// without a lookup table. The _id is that string, not an ObjectID.
type Chat struct {
	ID                   string               `json:"id" bson:"_id"`
	Participants         []primitive.ObjectID `json:"participants" bson:"participants" validate:"required,len=2"`
	LastMessage          string               `json:"last_message" bson:"last_message"`
	LastMessageTimestamp time.Time            `json:"last_message_timestamp" bson:"last_message_timestamp"`
	CreatedAt            time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at" bson:"updated_at"`
}
