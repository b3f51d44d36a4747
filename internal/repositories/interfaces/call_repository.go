package interfaces

import (
	"context"

	"rentride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CallRepository interface {
	// Upsert writes the ringing row for a caller/receiver pair. Dialing
	// the same person twice overwrites rather than duplicates.
	Upsert(ctx context.Context, call *models.Call) error
	GetByID(ctx context.Context, id string) (*models.Call, error)
	GetRingingForReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Call, error)
	Delete(ctx context.Context, id string) error
	DeleteByParticipant(ctx context.Context, userID primitive.ObjectID) error
}
