package interfaces

import (
	"context"

	"rentride/internal/models"
	"rentride/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	Search(ctx context.Context, search *models.VehicleSearchParams, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
}
