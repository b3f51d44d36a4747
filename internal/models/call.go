package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CallStatus string
type CallOutcome string

const (
	CallStatusRinging CallStatus = "ringing"

	CallOutcomeVoice  CallOutcome = "Voice Call"
	CallOutcomeMissed CallOutcome = "Missed Call"
)

// Call is an ephemeral signaling row, not a transport: it announces a
// ringing call to the receiver and is deleted on hangup or accept. No
// media/audio stream is ever established by this service. The _id is
// "<callerID>_<receiverID>" so a caller has at most one pending call per
// receiver.
type Call struct {
	ID          string             `json:"id" bson:"_id"`
	CallerID    primitive.ObjectID `json:"caller_id" bson:"caller_id" validate:"required"`
	ReceiverID  primitive.ObjectID `json:"receiver_id" bson:"receiver_id" validate:"required"`
	CallerName  string             `json:"caller_name" bson:"caller_name"`
	CallerPhoto string             `json:"caller_photo" bson:"caller_photo"`
	Status      CallStatus         `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

type StartCallRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}

type LogCallRequest struct {
	ChatID  string      `json:"chat_id" validate:"required"`
	Outcome CallOutcome `json:"outcome" validate:"required"`
}
