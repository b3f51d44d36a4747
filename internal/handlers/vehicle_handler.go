package handlers

import (
	"rentride/internal/models"
	"rentride/internal/services"
	"rentride/internal/utils"
	"rentride/internal/validators"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// CreateVehicle lists a new vehicle owned by the caller
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request models.VehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateVehicleRequest(&request); err != nil {
		if verrs, ok := err.(validators.ValidationErrors); ok {
			utils.ValidationErrorResponse(c, verrs.ToMap())
			return
		}
		utils.BadRequestResponse(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), ownerID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle created successfully", vehicle)
}

// GetVehicle returns one vehicle by id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved", vehicle)
}

// UpdateVehicle edits a vehicle the caller owns
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	var request models.VehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateVehicleRequest(&request); err != nil {
		if verrs, ok := err.(validators.ValidationErrors); ok {
			utils.ValidationErrorResponse(c, verrs.ToMap())
			return
		}
		utils.BadRequestResponse(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), ownerID, vehicleID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle updated", vehicle)
}

// DeleteVehicle removes a vehicle the caller owns
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), ownerID, vehicleID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle deleted", nil)
}

// GetMyVehicles lists the caller's own fleet
func (h *VehicleHandler) GetMyVehicles(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleService.GetOwnerVehicles(c.Request.Context(), ownerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)}
	utils.SuccessResponseWithMeta(c, "Vehicles retrieved", vehicles, meta)
}

// SearchVehicles lists the catalog with optional filters
func (h *VehicleHandler) SearchVehicles(c *gin.Context) {
	var search models.VehicleSearchParams
	if err := c.ShouldBindQuery(&search); err != nil {
		utils.BadRequestResponse(c, "Invalid search parameters")
		return
	}

	params := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleService.SearchVehicles(c.Request.Context(), &search, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)}
	utils.SuccessResponseWithMeta(c, "Vehicles retrieved", vehicles, meta)
}
