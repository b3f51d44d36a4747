package services

import (
	"context"
	"fmt"

	"rentride/internal/models"
	"rentride/internal/repositories/interfaces"
	"rentride/internal/utils"
	"rentride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CallService interface {
	StartCall(ctx context.Context, callerID primitive.ObjectID, request *models.StartCallRequest) (*models.Call, error)
	GetIncomingCalls(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Call, error)
	EndCall(ctx context.Context, userID primitive.ObjectID, callID string) error

	// CleanupFor removes every signaling row a user is part of. Invoked
	// when their last websocket connection drops.
	CleanupFor(ctx context.Context, userID primitive.ObjectID) error
}

type callService struct {
	callRepo interfaces.CallRepository
	userRepo interfaces.UserRepository
	notifier Notifier
	logger   *logger.Logger
}

func NewCallService(
	callRepo interfaces.CallRepository,
	userRepo interfaces.UserRepository,
	notifier Notifier,
	logger *logger.Logger,
) CallService {
	return &callService{
		callRepo: callRepo,
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *callService) StartCall(ctx context.Context, callerID primitive.ObjectID, request *models.StartCallRequest) (*models.Call, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	receiverID, err := primitive.ObjectIDFromHex(request.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid receiver id", ErrInvalidInput)
	}

	if receiverID == callerID {
		return nil, fmt.Errorf("%w: cannot call yourself", ErrInvalidInput)
	}

	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, ErrNotFound
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, ErrNotFound
	}

	call := &models.Call{
		ID:          callerID.Hex() + utils.ChatIDSeparator + receiverID.Hex(),
		CallerID:    callerID,
		ReceiverID:  receiverID,
		CallerName:  caller.Name,
		CallerPhoto: caller.PhotoURL,
		Status:      models.CallStatusRinging,
	}

	if err := s.callRepo.Upsert(ctx, call); err != nil {
		s.logger.WithError(err).Error("Failed to start call")
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SendUserEvent(receiverID, utils.EventIncomingCall, map[string]interface{}{
			"call_id":      call.ID,
			"caller_id":    call.CallerID.Hex(),
			"caller_name":  call.CallerName,
			"caller_photo": call.CallerPhoto,
		})
	}

	s.logger.WithUserID(callerID).WithField("call_id", call.ID).Info("Call started")

	return call, nil
}

func (s *callService) GetIncomingCalls(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Call, error) {
	return s.callRepo.GetRingingForReceiver(ctx, receiverID)
}

func (s *callService) EndCall(ctx context.Context, userID primitive.ObjectID, callID string) error {
	call, err := s.callRepo.GetByID(ctx, callID)
	if err != nil {
		// Hanging up an already-finished call is a no-op, not an error:
		// both sides race to delete the same row.
		return nil
	}

	if call.CallerID != userID && call.ReceiverID != userID {
		return ErrForbidden
	}

	if err := s.callRepo.Delete(ctx, callID); err != nil {
		return err
	}

	if s.notifier != nil {
		other := call.CallerID
		if other == userID {
			other = call.ReceiverID
		}
		s.notifier.SendUserEvent(other, utils.EventCallEnded, map[string]interface{}{
			"call_id": callID,
		})
	}

	return nil
}

func (s *callService) CleanupFor(ctx context.Context, userID primitive.ObjectID) error {
	return s.callRepo.DeleteByParticipant(ctx, userID)
}
