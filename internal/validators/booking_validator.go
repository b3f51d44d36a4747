package validators

import (
	"fmt"

	"rentride/internal/models"
	"rentride/internal/utils"
)

// ValidateBookingRequest rejects malformed booking input before the
// service layer touches the database.
func ValidateBookingRequest(request *models.BookingRequest) error {
	if errs := ValidateStruct(request); len(errs) > 0 {
		return errs
	}

	start, err := utils.ParseDate(request.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date: expected YYYY-MM-DD")
	}

	end, err := utils.ParseDate(request.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date: expected YYYY-MM-DD")
	}

	if !end.After(start) {
		return ErrInvalidDateRange
	}

	if utils.DaysBetween(start, end) > utils.MaxRentalDays {
		return fmt.Errorf("rental cannot exceed %d days", utils.MaxRentalDays)
	}

	return nil
}

func ValidateBookingStatus(status models.BookingStatus) error {
	switch status {
	case models.BookingStatusApproved, models.BookingStatusRejected:
		return nil
	default:
		return fmt.Errorf("status must be approved or rejected")
	}
}
