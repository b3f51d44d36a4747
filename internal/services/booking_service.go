package services

import (
	"context"
	"fmt"
	"time"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/utils"
	"rentride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	ComputeQuote(ctx context.Context, vehicleID primitive.ObjectID, startDate, endDate string) (*models.Quote, error)
	CreateBooking(ctx context.Context, customerID primitive.ObjectID, request *models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID primitive.ObjectID) (*models.Booking, error)
	SetBookingStatus(ctx context.Context, ownerID, bookingID primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)
	CancelBooking(ctx context.Context, customerID, bookingID primitive.ObjectID) error
	EditBooking(ctx context.Context, customerID, bookingID primitive.ObjectID, startDate, endDate string) (*models.Booking, error)

	GetCustomerBookings(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	vehicleRepo interfaces.VehicleRepository
	userRepo    interfaces.UserRepository
	notifier    Notifier
	logger      *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	notifier Notifier,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *bookingService) ComputeQuote(ctx context.Context, vehicleID primitive.ObjectID, startDate, endDate string) (*models.Quote, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	start, end, err := parseRentalWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return quoteFor(vehicle.PricePerDay, start, end)
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID primitive.ObjectID, request *models.BookingRequest) (*models.Booking, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	vehicleID, err := primitive.ObjectIDFromHex(request.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id", ErrInvalidInput)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	if vehicle.OwnerID == customerID {
		return nil, ErrSelfBooking
	}

	start, end, err := parseRentalWindow(request.StartDate, request.EndDate)
	if err != nil {
		return nil, err
	}

	if start.Before(utils.StartOfDay(time.Now())) {
		return nil, fmt.Errorf("%w: start date is in the past", ErrInvalidInput)
	}

	quote, err := quoteFor(vehicle.PricePerDay, start, end)
	if err != nil {
		return nil, err
	}

	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, ErrNotFound
	}

	booking := &models.Booking{
		VehicleID:     vehicle.ID,
		VehicleBrand:  vehicle.Brand,
		VehicleModel:  vehicle.Model,
		VehicleImage:  vehicle.ImageURL,
		OwnerID:       vehicle.OwnerID,
		OwnerName:     vehicle.OwnerContact.Name,
		OwnerContact:  vehicle.OwnerContact.Phone,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		StartDate:     start,
		EndDate:       end,
		Days:          quote.Days,
		TotalPrice:    quote.TotalPrice,
		Status:        models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.logger.WithError(err).Error("Failed to create booking")
		return nil, err
	}

	s.notifyBooking(booking.OwnerID, booking)

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"vehicle_id":  vehicle.ID.Hex(),
		"customer_id": customerID.Hex(),
		"days":        booking.Days,
		"total_price": booking.TotalPrice,
	})

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if booking.CustomerID != userID && booking.OwnerID != userID {
		return nil, ErrForbidden
	}

	return booking, nil
}

func (s *bookingService) SetBookingStatus(ctx context.Context, ownerID, bookingID primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	if status != models.BookingStatusApproved && status != models.BookingStatusRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if booking.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	// Single atomic transition out of pending. The losing side of two
	// concurrent decisions observes matched == false.
	matched, err := s.bookingRepo.UpdateStatusIfPending(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrInvalidTransition
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()

	s.notifyBooking(booking.CustomerID, booking)

	s.logger.LogBookingEvent(booking.ID, string(status), map[string]interface{}{
		"owner_id": ownerID.Hex(),
	})

	return booking, nil
}

// CancelBooking removes a pending request entirely; the owner sees it
// disappear rather than linger in a cancelled state.
func (s *bookingService) CancelBooking(ctx context.Context, customerID, bookingID primitive.ObjectID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrNotFound
	}

	if booking.CustomerID != customerID {
		return ErrForbidden
	}

	// The delete itself is the pending check. Re-reading the status here
	// would leave a window for an owner decision to land in between.
	matched, err := s.bookingRepo.DeleteIfPending(ctx, bookingID)
	if err != nil {
		return err
	}
	if !matched {
		return ErrInvalidTransition
	}

	if s.notifier != nil {
		s.notifier.SendUserEvent(booking.OwnerID, utils.EventBookingUpdated, map[string]interface{}{
			"booking_id": bookingID.Hex(),
			"deleted":    true,
		})
	}

	s.logger.LogBookingEvent(bookingID, "cancelled", map[string]interface{}{
		"customer_id": customerID.Hex(),
	})

	return nil
}

func (s *bookingService) EditBooking(ctx context.Context, customerID, bookingID primitive.ObjectID, startDate, endDate string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if booking.CustomerID != customerID {
		return nil, ErrForbidden
	}

	start, end, err := parseRentalWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if start.Before(utils.StartOfDay(time.Now())) {
		return nil, fmt.Errorf("%w: start date is in the past", ErrInvalidInput)
	}

	// Reprice against the vehicle's current rate.
	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	quote, err := quoteFor(vehicle.PricePerDay, start, end)
	if err != nil {
		return nil, err
	}

	matched, err := s.bookingRepo.UpdateDatesIfPending(ctx, bookingID, map[string]interface{}{
		"start_date":  start,
		"end_date":    end,
		"days":        quote.Days,
		"total_price": quote.TotalPrice,
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrInvalidTransition
	}

	booking.StartDate = start
	booking.EndDate = end
	booking.Days = quote.Days
	booking.TotalPrice = quote.TotalPrice
	booking.UpdatedAt = time.Now()

	s.notifyBooking(booking.OwnerID, booking)

	return booking, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByCustomer(ctx, customerID, params)
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByOwner(ctx, ownerID, params)
}

func (s *bookingService) notifyBooking(userID primitive.ObjectID, booking *models.Booking) {
	if s.notifier == nil {
		return
	}

	s.notifier.SendUserEvent(userID, utils.EventBookingUpdated, map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"status":     booking.Status,
	})
}

func parseRentalWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}

	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}

	return start, end, nil
}

// quoteFor prices a validated window: whole days, any partial day rounded
// up, times the per-day rate.
func quoteFor(pricePerDay float64, start, end time.Time) (*models.Quote, error) {
	days := utils.DaysBetween(start, end)
	if days < 1 {
		return nil, fmt.Errorf("%w: rental must cover at least one day", ErrInvalidInput)
	}
	if days > utils.MaxRentalDays {
		return nil, fmt.Errorf("%w: rental cannot exceed %d days", ErrInvalidInput, utils.MaxRentalDays)
	}

	return &models.Quote{
		Days:       days,
		TotalPrice: float64(days) * pricePerDay,
	}, nil
}
