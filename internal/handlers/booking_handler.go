package handlers

import (
	"rentride/internal/models"
	"rentride/internal/services"
	"rentride/internal/utils"
	"rentride/internal/validators"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// GetQuote prices a rental window without creating anything
func (h *BookingHandler) GetQuote(c *gin.Context) {
	vehicleID, err := validators.ParseObjectID(c.Query("vehicle_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		utils.BadRequestResponse(c, "start_date and end_date are required")
		return
	}

	quote, err := h.bookingService.ComputeQuote(c.Request.Context(), vehicleID, startDate, endDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Quote computed", quote)
}

// CreateBooking submits a rental request for a vehicle
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request models.BookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateBookingRequest(&request); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), customerID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetBooking returns one booking visible to the caller
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved", booking)
}

// SetBookingStatus lets the vehicle owner approve or reject a pending booking
func (h *BookingHandler) SetBookingStatus(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request models.BookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateBookingStatus(request.Status); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	booking, err := h.bookingService.SetBookingStatus(c.Request.Context(), ownerID, bookingID, request.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking status updated", booking)
}

// CancelBooking lets the customer withdraw a pending booking
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), customerID, bookingID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", nil)
}

// EditBooking lets the customer move the dates of a pending booking
func (h *BookingHandler) EditBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := validators.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.EditBooking(c.Request.Context(), customerID, bookingID, request.StartDate, request.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking updated", booking)
}

// GetMyBookings lists the caller's bookings as a customer
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.GetCustomerBookings(c.Request.Context(), customerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)}
	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, meta)
}

// GetOwnerBookings lists bookings against the caller's vehicles
func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.GetOwnerBookings(c.Request.Context(), ownerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)}
	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, meta)
}
