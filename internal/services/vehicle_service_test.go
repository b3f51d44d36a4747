package services

import (
	"context"
	"errors"
	"testing"

	"rentride/internal/models"
	"rentride/pkg/maps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubMapsProvider struct {
	response *maps.GeocodeResponse
	err      error
	calls    int
}

func (p *stubMapsProvider) Geocode(ctx context.Context, address string) (*maps.GeocodeResponse, error) {
	p.calls++
	return p.response, p.err
}

func (p *stubMapsProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*maps.GeocodeResponse, error) {
	return p.response, p.err
}

type vehicleFixture struct {
	service  VehicleService
	vehicles *fakeVehicleRepo
	users    *fakeUserRepo
	geocoder *stubMapsProvider

	owner *models.User
}

func newVehicleFixture(t *testing.T) *vehicleFixture {
	t.Helper()

	vehicles := newFakeVehicleRepo()
	users := newFakeUserRepo()
	geocoder := &stubMapsProvider{}

	owner := &models.User{
		Name:    "Nimal Perera",
		Email:   "nimal@example.com",
		Phone:   "+94771234567",
		Address: "12 Galle Road, Colombo",
	}
	require.NoError(t, users.Create(context.Background(), owner))

	return &vehicleFixture{
		service:  NewVehicleService(vehicles, users, geocoder, testLogger()),
		vehicles: vehicles,
		users:    users,
		geocoder: geocoder,
		owner:    owner,
	}
}

func validVehicleRequest() *models.VehicleRequest {
	return &models.VehicleRequest{
		Brand:        "Toyota",
		Model:        "Aqua",
		Category:     models.VehicleCategoryCar,
		LicensePlate: "cab  1234",
		PricePerDay:  5000,
		Seats:        4,
		LocationName: "Colombo",
	}
}

func TestCreateVehicleSnapshotsOwnerContact(t *testing.T) {
	f := newVehicleFixture(t)

	vehicle, err := f.service.CreateVehicle(context.Background(), f.owner.ID, validVehicleRequest())
	require.NoError(t, err)

	assert.Equal(t, f.owner.ID, vehicle.OwnerID)
	assert.Equal(t, f.owner.Name, vehicle.OwnerContact.Name)
	assert.Equal(t, f.owner.Phone, vehicle.OwnerContact.Phone)
	assert.Equal(t, f.owner.Email, vehicle.OwnerContact.Email)

	// The plate is normalized on the way in.
	assert.Equal(t, "CAB 1234", vehicle.LicensePlate)
}

func TestCreateVehicleGeocodesMissingCoordinates(t *testing.T) {
	f := newVehicleFixture(t)
	f.geocoder.response = &maps.GeocodeResponse{
		Results: []maps.GeocodeResult{{
			Address:     "Colombo, Sri Lanka",
			Coordinates: maps.Location{Latitude: 6.9271, Longitude: 79.8612},
		}},
	}

	vehicle, err := f.service.CreateVehicle(context.Background(), f.owner.ID, validVehicleRequest())
	require.NoError(t, err)

	require.NotNil(t, vehicle.Location.Latitude)
	require.NotNil(t, vehicle.Location.Longitude)
	assert.InDelta(t, 6.9271, *vehicle.Location.Latitude, 0.0001)
	assert.Equal(t, 1, f.geocoder.calls)
}

func TestCreateVehicleSurvivesEmptyGeocoderReply(t *testing.T) {
	f := newVehicleFixture(t)
	// The provider answered, but with nothing at all.

	vehicle, err := f.service.CreateVehicle(context.Background(), f.owner.ID, validVehicleRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.geocoder.calls)
	assert.Equal(t, "Colombo", vehicle.Location.Name)
	assert.Nil(t, vehicle.Location.Latitude)
	assert.Nil(t, vehicle.Location.Longitude)
}

func TestCreateVehicleSurvivesGeocoderFailure(t *testing.T) {
	f := newVehicleFixture(t)
	f.geocoder.err = errors.New("quota exceeded")

	vehicle, err := f.service.CreateVehicle(context.Background(), f.owner.ID, validVehicleRequest())
	require.NoError(t, err)

	assert.Equal(t, "Colombo", vehicle.Location.Name)
	assert.Nil(t, vehicle.Location.Latitude)
}

func TestCreateVehicleKeepsProvidedCoordinates(t *testing.T) {
	f := newVehicleFixture(t)

	lat, lng := 7.2906, 80.6337
	request := validVehicleRequest()
	request.Latitude = &lat
	request.Longitude = &lng

	vehicle, err := f.service.CreateVehicle(context.Background(), f.owner.ID, request)
	require.NoError(t, err)

	assert.Equal(t, 0, f.geocoder.calls)
	require.NotNil(t, vehicle.Location.Latitude)
	assert.Equal(t, lat, *vehicle.Location.Latitude)
}

func TestUpdateVehicleOnlyOwner(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()

	vehicle, err := f.service.CreateVehicle(ctx, f.owner.ID, validVehicleRequest())
	require.NoError(t, err)

	_, err = f.service.UpdateVehicle(ctx, primitive.NewObjectID(), vehicle.ID, validVehicleRequest())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteVehicleOnlyOwner(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()

	vehicle, err := f.service.CreateVehicle(ctx, f.owner.ID, validVehicleRequest())
	require.NoError(t, err)

	err = f.service.DeleteVehicle(ctx, primitive.NewObjectID(), vehicle.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.service.DeleteVehicle(ctx, f.owner.ID, vehicle.ID))

	_, err = f.service.GetVehicle(ctx, vehicle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchVehiclesSortsNearestFirst(t *testing.T) {
	f := newVehicleFixture(t)
	ctx := context.Background()

	near := validVehicleRequest()
	nearLat, nearLng := 6.93, 79.86 // Colombo
	near.Model = "Near"
	near.Latitude, near.Longitude = &nearLat, &nearLng

	far := validVehicleRequest()
	farLat, farLng := 9.66, 80.01 // Jaffna
	far.Model = "Far"
	far.Latitude, far.Longitude = &farLat, &farLng

	noCoords := validVehicleRequest()
	noCoords.Model = "Unknown"
	noCoords.LocationName = ""

	for _, request := range []*models.VehicleRequest{far, noCoords, near} {
		_, err := f.service.CreateVehicle(ctx, f.owner.ID, request)
		require.NoError(t, err)
	}

	searchLat, searchLng := 6.9271, 79.8612
	results, total, err := f.service.SearchVehicles(ctx, &models.VehicleSearchParams{
		Latitude:  &searchLat,
		Longitude: &searchLng,
	}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, results, 3)

	assert.Equal(t, "Near", results[0].Model)
	assert.Equal(t, "Far", results[1].Model)
	// Vehicles without coordinates sort last.
	assert.Equal(t, "Unknown", results[2].Model)
}
