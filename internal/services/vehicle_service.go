package services

import (
	"context"
	"fmt"
	"sort"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/utils"
	"rentride/pkg/logger"
	"rentride/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleService interface {
	CreateVehicle(ctx context.Context, ownerID primitive.ObjectID, request *models.VehicleRequest) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, ownerID, id primitive.ObjectID, request *models.VehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, ownerID, id primitive.ObjectID) error

	GetOwnerVehicles(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	SearchVehicles(ctx context.Context, search *models.VehicleSearchParams, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
}

type vehicleService struct {
	vehicleRepo  interfaces.VehicleRepository
	userRepo     interfaces.UserRepository
	mapsProvider maps.MapsProvider
	logger       *logger.Logger
}

func NewVehicleService(
	vehicleRepo interfaces.VehicleRepository,
	userRepo interfaces.UserRepository,
	mapsProvider maps.MapsProvider,
	logger *logger.Logger,
) VehicleService {
	return &vehicleService{
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		mapsProvider: mapsProvider,
		logger:       logger,
	}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, ownerID primitive.ObjectID, request *models.VehicleRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, ErrNotFound
	}

	vehicle := &models.Vehicle{
		OwnerID:       ownerID,
		Brand:         utils.SanitizeString(request.Brand),
		Model:         utils.SanitizeString(request.Model),
		Category:      request.Category,
		Type:          request.Type,
		LicensePlate:  utils.NormalizePlate(request.LicensePlate),
		EngineNumber:  request.EngineNumber,
		ChassisNumber: request.ChassisNumber,
		PricePerDay:   request.PricePerDay,
		Seats:         request.Seats,
		Description:   request.Description,
		ImageURL:      request.ImageURL,
		Location: models.VehicleLocation{
			Name:      request.LocationName,
			Latitude:  request.Latitude,
			Longitude: request.Longitude,
		},
		OwnerContact: models.OwnerContact{
			OwnerID: owner.ID,
			Name:    owner.Name,
			Phone:   owner.Phone,
			Email:   owner.Email,
			Address: owner.Address,
		},
	}

	s.resolveLocation(ctx, vehicle)

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.WithError(err).Error("Failed to create vehicle")
		return nil, err
	}

	s.logger.WithUserID(ownerID).WithField("vehicle_id", vehicle.ID.Hex()).Info("Vehicle listed")

	return vehicle, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID, id primitive.ObjectID, request *models.VehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if vehicle.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updates := map[string]interface{}{
		"brand":          utils.SanitizeString(request.Brand),
		"model":          utils.SanitizeString(request.Model),
		"category":       request.Category,
		"type":           request.Type,
		"license_plate":  utils.NormalizePlate(request.LicensePlate),
		"engine_number":  request.EngineNumber,
		"chassis_number": request.ChassisNumber,
		"price_per_day":  request.PricePerDay,
		"seats":          request.Seats,
		"description":    request.Description,
	}

	if request.ImageURL != "" {
		updates["image_url"] = request.ImageURL
	}

	if request.LocationName != vehicle.Location.Name {
		location := models.VehicleLocation{
			Name:      request.LocationName,
			Latitude:  request.Latitude,
			Longitude: request.Longitude,
		}

		probe := &models.Vehicle{Location: location}
		s.resolveLocation(ctx, probe)
		updates["location"] = probe.Location
	}

	if err := s.vehicleRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, ownerID, id primitive.ObjectID) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if vehicle.OwnerID != ownerID {
		return ErrForbidden
	}

	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) GetOwnerVehicles(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.GetByOwner(ctx, ownerID, params)
}

func (s *vehicleService) SearchVehicles(ctx context.Context, search *models.VehicleSearchParams, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	vehicles, total, err := s.vehicleRepo.Search(ctx, search, params)
	if err != nil {
		return nil, 0, err
	}

	// Nearest-first ordering when the caller supplied a reference point.
	// Vehicles without coordinates sort last, in their original order.
	if search.Latitude != nil && search.Longitude != nil {
		sortByDistance(vehicles, *search.Latitude, *search.Longitude)
	}

	return vehicles, total, nil
}

func sortByDistance(vehicles []*models.Vehicle, lat, lng float64) {
	sort.SliceStable(vehicles, func(i, j int) bool {
		di, iOK := vehicleDistance(vehicles[i], lat, lng)
		dj, jOK := vehicleDistance(vehicles[j], lat, lng)

		if iOK && jOK {
			return di < dj
		}
		return iOK && !jOK
	})
}

func vehicleDistance(v *models.Vehicle, lat, lng float64) (float64, bool) {
	if v.Location.Latitude == nil || v.Location.Longitude == nil {
		return 0, false
	}
	return utils.CalculateDistance(lat, lng, *v.Location.Latitude, *v.Location.Longitude), true
}

// resolveLocation fills missing coordinates from the location name. A
// geocoder failure downgrades the listing to name-only rather than
// failing the write.
func (s *vehicleService) resolveLocation(ctx context.Context, vehicle *models.Vehicle) {
	if vehicle.Location.Name == "" {
		return
	}
	if vehicle.Location.Latitude != nil && vehicle.Location.Longitude != nil {
		return
	}
	if s.mapsProvider == nil {
		return
	}

	resp, err := s.mapsProvider.Geocode(ctx, vehicle.Location.Name)
	if err != nil || resp == nil || len(resp.Results) == 0 {
		s.logger.WithField("location", vehicle.Location.Name).Warn("Geocoding failed, keeping name only")
		return
	}

	lat := resp.Results[0].Coordinates.Latitude
	lng := resp.Results[0].Coordinates.Longitude
	vehicle.Location.Latitude = &lat
	vehicle.Location.Longitude = &lng
}
