package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/utils"
	"rentride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatService interface {
	// ResolveChatID derives the deterministic conversation id for a pair
	// of users. Commutative: both participants resolve the same id.
	ResolveChatID(a, b primitive.ObjectID) string

	EnsureChat(ctx context.Context, userID, otherID primitive.ObjectID) (*models.Chat, error)
	GetUserChats(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*ChatSummary, int64, error)
	SendMessage(ctx context.Context, senderID primitive.ObjectID, chatID string, request *models.SendMessageRequest) (*models.Message, error)
	GetMessages(ctx context.Context, userID primitive.ObjectID, chatID string, params *utils.PaginationParams) ([]*models.Message, int64, error)

	SetPresence(ctx context.Context, userID primitive.ObjectID, online bool) error

	// LogCall appends the call outcome to the conversation history as a
	// type=call message ("Voice Call" or "Missed Call").
	LogCall(ctx context.Context, callerID primitive.ObjectID, request *models.LogCallRequest) (*models.Message, error)
}

// ChatSummary is a chat joined with the other participant's public
// profile, which is what a conversation list renders.
type ChatSummary struct {
	Chat  *models.Chat          `json:"chat"`
	Other *models.PublicProfile `json:"other"`
}

type chatService struct {
	chatRepo interfaces.ChatRepository
	userRepo interfaces.UserRepository
	notifier Notifier
	logger   *logger.Logger
}

func NewChatService(
	chatRepo interfaces.ChatRepository,
	userRepo interfaces.UserRepository,
	notifier Notifier,
	logger *logger.Logger,
) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *chatService) ResolveChatID(a, b primitive.ObjectID) string {
	first, second := a.Hex(), b.Hex()
	if first > second {
		first, second = second, first
	}
	return first + utils.ChatIDSeparator + second
}

func (s *chatService) EnsureChat(ctx context.Context, userID, otherID primitive.ObjectID) (*models.Chat, error) {
	if userID == otherID {
		return nil, ErrSelfChat
	}

	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, ErrNotFound
	}

	chat := &models.Chat{
		ID:           s.ResolveChatID(userID, otherID),
		Participants: []primitive.ObjectID{userID, otherID},
	}

	if err := s.chatRepo.Ensure(ctx, chat); err != nil {
		s.logger.WithError(err).WithChatID(chat.ID).Error("Failed to ensure chat")
		return nil, err
	}

	return s.chatRepo.GetByID(ctx, chat.ID)
}

func (s *chatService) GetUserChats(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*ChatSummary, int64, error) {
	chats, total, err := s.chatRepo.GetByParticipant(ctx, userID, params)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summary := &ChatSummary{Chat: chat}

		for _, participant := range chat.Participants {
			if participant == userID {
				continue
			}
			if other, err := s.userRepo.GetByID(ctx, participant); err == nil {
				summary.Other = other.Public()
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, total, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderID primitive.ObjectID, chatID string, request *models.SendMessageRequest) (*models.Message, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(request.Content) > utils.MaxMessageLength {
		return nil, fmt.Errorf("%w: message too long", ErrInvalidInput)
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !isParticipant(chat, senderID) {
		return nil, ErrForbidden
	}

	msgType := request.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	message := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Type:     msgType,
		Content:  request.Content,
	}

	if err := s.chatRepo.InsertMessage(ctx, message); err != nil {
		s.logger.WithError(err).WithChatID(chatID).Error("Failed to insert message")
		return nil, err
	}

	// The preview on the chat row is what the conversation list shows.
	if err := s.chatRepo.UpdateLastMessage(ctx, chatID, previewFor(message), message.CreatedAt); err != nil {
		s.logger.WithError(err).WithChatID(chatID).Warn("Failed to update chat preview")
	}

	s.pushMessage(chat, message)

	return message, nil
}

func (s *chatService) GetMessages(ctx context.Context, userID primitive.ObjectID, chatID string, params *utils.PaginationParams) ([]*models.Message, int64, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, ErrNotFound
	}

	if !isParticipant(chat, userID) {
		return nil, 0, ErrForbidden
	}

	return s.chatRepo.GetMessages(ctx, chatID, params)
}

func (s *chatService) SetPresence(ctx context.Context, userID primitive.ObjectID, online bool) error {
	if err := s.userRepo.SetPresence(ctx, userID, online); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.SendUserEvent(userID, utils.EventPresence, map[string]interface{}{
			"user_id":   userID.Hex(),
			"is_online": online,
		})
	}

	return nil
}

func (s *chatService) LogCall(ctx context.Context, callerID primitive.ObjectID, request *models.LogCallRequest) (*models.Message, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if request.Outcome != models.CallOutcomeVoice && request.Outcome != models.CallOutcomeMissed {
		return nil, fmt.Errorf("%w: unknown call outcome", ErrInvalidInput)
	}

	return s.SendMessage(ctx, callerID, request.ChatID, &models.SendMessageRequest{
		Content: string(request.Outcome),
		Type:    models.MessageTypeCall,
	})
}

func (s *chatService) pushMessage(chat *models.Chat, message *models.Message) {
	if s.notifier == nil {
		return
	}

	payload := map[string]interface{}{
		"message_id": message.ID.Hex(),
		"chat_id":    message.ChatID,
		"sender_id":  message.SenderID.Hex(),
		"type":       message.Type,
		"content":    message.Content,
		"created_at": message.CreatedAt.Format(time.RFC3339),
	}

	s.notifier.SendChatEvent(message.ChatID, utils.EventChatMessage, payload)

	// Nudge both participants' conversation lists, including anyone not
	// currently inside the chat room.
	for _, participant := range chat.Participants {
		s.notifier.SendUserEvent(participant, utils.EventChatUpdated, map[string]interface{}{
			"chat_id":      message.ChatID,
			"last_message": previewFor(message),
		})
	}
}

func isParticipant(chat *models.Chat, userID primitive.ObjectID) bool {
	for _, participant := range chat.Participants {
		if participant == userID {
			return true
		}
	}
	return false
}

func previewFor(message *models.Message) string {
	switch message.Type {
	case models.MessageTypeImage:
		return "📷 Photo"
	case models.MessageTypeAudio:
		return "🎤 Voice message"
	default:
		preview := message.Content
		if len(preview) > 80 {
			preview = strings.TrimSpace(preview[:77]) + "..."
		}
		return preview
	}
}
