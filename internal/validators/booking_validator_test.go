package validators

import (
	"testing"

	"rentride/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateBookingRequest(t *testing.T) {
	err := ValidateBookingRequest(&models.BookingRequest{
		VehicleID: "65a1b2c3d4e5f60718293a4b",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-05",
	})
	assert.NoError(t, err)
}

func TestValidateBookingRequestMissingFields(t *testing.T) {
	err := ValidateBookingRequest(&models.BookingRequest{})
	assert.Error(t, err)
}

func TestValidateBookingRequestBadDateFormat(t *testing.T) {
	err := ValidateBookingRequest(&models.BookingRequest{
		VehicleID: "65a1b2c3d4e5f60718293a4b",
		StartDate: "01/06/2024",
		EndDate:   "2024-06-05",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestValidateBookingRequestReversedDates(t *testing.T) {
	err := ValidateBookingRequest(&models.BookingRequest{
		VehicleID: "65a1b2c3d4e5f60718293a4b",
		StartDate: "2024-06-05",
		EndDate:   "2024-06-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestValidateBookingRequestSameDay(t *testing.T) {
	err := ValidateBookingRequest(&models.BookingRequest{
		VehicleID: "65a1b2c3d4e5f60718293a4b",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestValidateBookingRequestTooLong(t *testing.T) {
	err := ValidateBookingRequest(&models.BookingRequest{
		VehicleID: "65a1b2c3d4e5f60718293a4b",
		StartDate: "2024-01-01",
		EndDate:   "2024-06-01",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "90")
}

func TestValidateBookingStatus(t *testing.T) {
	assert.NoError(t, ValidateBookingStatus(models.BookingStatusApproved))
	assert.NoError(t, ValidateBookingStatus(models.BookingStatusRejected))
	assert.Error(t, ValidateBookingStatus(models.BookingStatusPending))
	assert.Error(t, ValidateBookingStatus("cancelled"))
}
