package interfaces

import (
	"context"

	"rentride/internal/models"
	"rentride/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)

	// DeleteIfPending removes the booking only while it is still pending.
	// Returns false when nothing matched, so a cancel racing an owner
	// decision cannot erase an approved booking.
	DeleteIfPending(ctx context.Context, id primitive.ObjectID) (bool, error)

	GetByCustomer(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// UpdateStatusIfPending flips a pending booking to the given status.
	// Returns false when the booking was not found in the pending state,
	// which closes the window between two concurrent decisions.
	UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (bool, error)

	// UpdateDatesIfPending rewrites the rental window and derived price
	// fields, but only while the booking is still pending.
	UpdateDatesIfPending(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (bool, error)
}
