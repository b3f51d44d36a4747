package handlers

import (
	"rentride/internal/models"
	"rentride/internal/services"
	"rentride/internal/utils"

	"github.com/gin-gonic/gin"
)

type CallHandler struct {
	callService services.CallService
}

func NewCallHandler(callService services.CallService) *CallHandler {
	return &CallHandler{
		callService: callService,
	}
}

// StartCall rings another user
func (h *CallHandler) StartCall(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request models.StartCallRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	call, err := h.callService.StartCall(c.Request.Context(), callerID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Call started", call)
}

// GetIncomingCalls lists calls currently ringing for the caller
func (h *CallHandler) GetIncomingCalls(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	calls, err := h.callService.GetIncomingCalls(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Incoming calls retrieved", calls)
}

// EndCall hangs up. Ending an already-finished call succeeds silently.
func (h *CallHandler) EndCall(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	callID := c.Param("id")
	if callID == "" {
		utils.BadRequestResponse(c, "Call ID is required")
		return
	}

	if err := h.callService.EndCall(c.Request.Context(), userID, callID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Call ended", nil)
}
