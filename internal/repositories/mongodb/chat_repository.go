package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type chatRepository struct {
	chatsCollection    *mongo.Collection
	messagesCollection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) interfaces.ChatRepository {
	return &chatRepository{
		chatsCollection:    db.Collection("chats"),
		messagesCollection: db.Collection("messages"),
	}
}

func (r *chatRepository) Ensure(ctx context.Context, chat *models.Chat) error {
	now := time.Now()

	// $setOnInsert keeps an existing chat intact, so opening a chat that
	// already has history never resets its preview fields.
	update := bson.M{
		"$setOnInsert": bson.M{
			"participants":           chat.Participants,
			"last_message":           "",
			"last_message_timestamp": now,
			"created_at":             now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.chatsCollection.UpdateOne(ctx, bson.M{"_id": chat.ID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to ensure chat: %w", err)
	}

	return nil
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	var chat models.Chat
	err := r.chatsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("chat not found")
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return &chat, nil
}

func (r *chatRepository) GetByParticipant(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Chat, int64, error) {
	filter := bson.M{"participants": userID}

	total, err := r.chatsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count chats: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(params.GetSkip())).
		SetLimit(int64(params.GetLimit())).
		SetSort(bson.D{{Key: "last_message_timestamp", Value: -1}})

	cursor, err := r.chatsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find chats: %w", err)
	}
	defer cursor.Close(ctx)

	var chats []*models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, 0, fmt.Errorf("failed to decode chats: %w", err)
	}

	return chats, total, nil
}

func (r *chatRepository) UpdateLastMessage(ctx context.Context, chatID string, preview string, at time.Time) error {
	_, err := r.chatsCollection.UpdateOne(
		ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{
			"last_message":           preview,
			"last_message_timestamp": at,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last message: %w", err)
	}

	return nil
}

func (r *chatRepository) InsertMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := r.messagesCollection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

func (r *chatRepository) GetMessages(ctx context.Context, chatID string, params *utils.PaginationParams) ([]*models.Message, int64, error) {
	filter := bson.M{"chat_id": chatID}

	total, err := r.messagesCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	// Newest first, so the first page is the bottom of the conversation.
	opts := options.Find().
		SetSkip(int64(params.GetSkip())).
		SetLimit(int64(params.GetLimit())).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.messagesCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, fmt.Errorf("failed to decode messages: %w", err)
	}

	return messages, total, nil
}
