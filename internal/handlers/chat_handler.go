package handlers

import (
	"rentride/internal/models"
	"rentride/internal/services"
	"rentride/internal/utils"
	"rentride/internal/validators"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// EnsureChat opens (or returns) the conversation with another user
func (h *ChatHandler) EnsureChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	otherID, err := validators.ParseObjectID(request.UserID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	chat, err := h.chatService.EnsureChat(c.Request.Context(), userID, otherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Chat ready", chat)
}

// GetMyChats lists the caller's conversations, most recent first
func (h *ChatHandler) GetMyChats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	chats, total, err := h.chatService.GetUserChats(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)}
	utils.SuccessResponseWithMeta(c, "Chats retrieved", chats, meta)
}

// SendMessage appends a message to a conversation the caller is part of
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chatID := c.Param("id")
	if chatID == "" {
		utils.BadRequestResponse(c, "Chat ID is required")
		return
	}

	var request models.SendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), userID, chatID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Message sent", message)
}

// GetMessages returns a page of conversation history, newest first
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chatID := c.Param("id")
	if chatID == "" {
		utils.BadRequestResponse(c, "Chat ID is required")
		return
	}

	params := utils.GetPaginationParams(c)

	messages, total, err := h.chatService.GetMessages(c.Request.Context(), userID, chatID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	meta := &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)}
	utils.SuccessResponseWithMeta(c, "Messages retrieved", messages, meta)
}

// LogCall records a finished or missed call in the conversation history
func (h *ChatHandler) LogCall(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request models.LogCallRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	message, err := h.chatService.LogCall(c.Request.Context(), userID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Call logged", message)
}
