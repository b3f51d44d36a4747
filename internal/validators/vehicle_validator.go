package validators

import (
	"fmt"

	"rentride/internal/models"
	"rentride/internal/utils"
)

var validCategories = map[models.VehicleCategory]bool{
	models.VehicleCategoryCar:     true,
	models.VehicleCategoryVan:     true,
	models.VehicleCategorySUV:     true,
	models.VehicleCategoryBike:    true,
	models.VehicleCategoryTruck:   true,
	models.VehicleCategoryScooter: true,
}

func ValidateVehicleRequest(request *models.VehicleRequest) error {
	if errs := ValidateStruct(request); len(errs) > 0 {
		return errs
	}

	if request.Category != "" && !validCategories[request.Category] {
		return fmt.Errorf("unknown vehicle category: %s", request.Category)
	}

	if request.LicensePlate != "" && !utils.IsValidLicensePlate(request.LicensePlate) {
		return fmt.Errorf("invalid license plate format")
	}

	if (request.Latitude == nil) != (request.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be provided together")
	}

	if request.Latitude != nil {
		if *request.Latitude < -90 || *request.Latitude > 90 {
			return fmt.Errorf("latitude out of range")
		}
		if *request.Longitude < -180 || *request.Longitude > 180 {
			return fmt.Errorf("longitude out of range")
		}
	}

	return nil
}
