package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/services"
	"rentride/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type vehicleRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewVehicleRepository(db *mongo.Database, cache services.CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		cache:      cache,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("license plate already registered")
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	r.cacheVehicle(ctx, vehicle)

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	if vehicle := r.getVehicleFromCache(ctx, id); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	r.cacheVehicle(ctx, &vehicle)

	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	r.invalidateVehicleCache(ctx, id)

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	r.invalidateVehicleCache(ctx, id)

	return nil
}

func (r *vehicleRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	filter := bson.M{"owner_id": ownerID}
	return r.findVehicles(ctx, filter, params)
}

func (r *vehicleRepository) Search(ctx context.Context, search *models.VehicleSearchParams, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	filter := bson.M{}

	if search.Category != "" {
		filter["category"] = search.Category
	}
	if search.MaxPrice > 0 {
		filter["price_per_day"] = bson.M{"$lte": search.MaxPrice}
	}
	if search.MinSeats > 0 {
		filter["seats"] = bson.M{"$gte": search.MinSeats}
	}

	if params.Search != "" {
		filter["$or"] = []bson.M{
			{"brand": bson.M{"$regex": params.Search, "$options": "i"}},
			{"model": bson.M{"$regex": params.Search, "$options": "i"}},
			{"location.name": bson.M{"$regex": params.Search, "$options": "i"}},
		}
	}

	return r.findVehicles(ctx, filter, params)
}

func (r *vehicleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	filter := params.GetSearchFilter([]string{"brand", "model"})
	return r.findVehicles(ctx, filter, params)
}

func (r *vehicleRepository) findVehicles(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicles: %w", err)
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache != nil {
		r.cache.CacheVehicle(ctx, vehicle, 15*time.Minute)
	}
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, id primitive.ObjectID) *models.Vehicle {
	if r.cache == nil {
		return nil
	}

	vehicle, err := r.cache.GetCachedVehicle(ctx, id)
	if err != nil {
		return nil
	}

	return vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.InvalidateVehicle(ctx, id)
	}
}
