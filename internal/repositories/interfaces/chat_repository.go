package interfaces

import (
	"context"
	"time"

	"rentride/internal/models"
	"rentride/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRepository interface {
	// Ensure creates the chat document if it does not exist yet and
	// leaves an existing one untouched. Safe to call on every open.
	Ensure(ctx context.Context, chat *models.Chat) error
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	GetByParticipant(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Chat, int64, error)
	UpdateLastMessage(ctx context.Context, chatID string, preview string, at time.Time) error

	InsertMessage(ctx context.Context, message *models.Message) error
	GetMessages(ctx context.Context, chatID string, params *utils.PaginationParams) ([]*models.Message, int64, error)
}
