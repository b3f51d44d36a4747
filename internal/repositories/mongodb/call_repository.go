package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type callRepository struct {
	collection *mongo.Collection
}

func NewCallRepository(db *mongo.Database) interfaces.CallRepository {
	return &callRepository{
		collection: db.Collection("calls"),
	}
}

func (r *callRepository) Upsert(ctx context.Context, call *models.Call) error {
	call.CreatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"caller_id":    call.CallerID,
			"receiver_id":  call.ReceiverID,
			"caller_name":  call.CallerName,
			"caller_photo": call.CallerPhoto,
			"status":       call.Status,
			"created_at":   call.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": call.ID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert call: %w", err)
	}

	return nil
}

func (r *callRepository) GetByID(ctx context.Context, id string) (*models.Call, error) {
	var call models.Call
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&call)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("call not found")
		}
		return nil, fmt.Errorf("failed to get call: %w", err)
	}

	return &call, nil
}

func (r *callRepository) GetRingingForReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Call, error) {
	filter := bson.M{
		"receiver_id": receiverID,
		"status":      models.CallStatusRinging,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find calls: %w", err)
	}
	defer cursor.Close(ctx)

	var calls []*models.Call
	if err := cursor.All(ctx, &calls); err != nil {
		return nil, fmt.Errorf("failed to decode calls: %w", err)
	}

	return calls, nil
}

func (r *callRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete call: %w", err)
	}

	return nil
}

func (r *callRepository) DeleteByParticipant(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{
		"$or": []bson.M{
			{"caller_id": userID},
			{"receiver_id": userID},
		},
	}

	_, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete calls: %w", err)
	}

	return nil
}
