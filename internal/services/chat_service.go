package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall-service/internal/events"
	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

type chatService struct {
	repo      repositories.Repository
	publisher *events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewChatService(repo repositories.Repository, publisher *events.Publisher, logger *slog.Logger, v *validator.Validator) ChatService {
	return &chatService{repo: repo, publisher: publisher, logger: logger, validator: v}
}

func (s *chatService) SendGlobalMessage(ctx context.Context, userID string, req SendMessageRequest) (*models.Message, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	msg := &models.Message{
		MessageID: uuid.NewString(),
		UserID:    user.UserID,
		Username:  user.Username,
		Content:   req.Content,
		Type:      models.MessageGlobal,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	s.publisher.Publish(events.GlobalRoom, events.EventNewMessage, msg)
	return msg, nil
}

func (s *chatService) GlobalHistory(ctx context.Context) (*ChatHistoryResponse, error) {
	msgs, err := s.repo.Message().ListGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("list global messages: %w", err)
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return &ChatHistoryResponse{Messages: msgs}, nil
}
