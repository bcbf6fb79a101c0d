package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall-service/internal/events"
	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// inviteCodeAttempts bounds retries when a generated code collides with an
// existing chat.
const inviteCodeAttempts = 5

type privateChatService struct {
	repo      repositories.Repository
	publisher *events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPrivateChatService(repo repositories.Repository, publisher *events.Publisher, logger *slog.Logger, v *validator.Validator) PrivateChatService {
	return &privateChatService{repo: repo, publisher: publisher, logger: logger, validator: v}
}

func newInviteCode() string {
	var b strings.Builder
	for i := 0; i < models.InviteCodeLength; i++ {
		b.WriteByte(inviteCodeAlphabet[rand.Intn(len(inviteCodeAlphabet))])
	}
	return b.String()
}

func (s *privateChatService) CreateChat(ctx context.Context, userID string, req CreateChatRequest) (*models.PrivateChat, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	creator, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve creator: %w", err)
	}

	now := time.Now()
	chat := &models.PrivateChat{
		ChatID:    uuid.NewString(),
		Name:      req.Name,
		CreatorID: creator.UserID,
		Members: []models.ChatMember{{
			UserID:   creator.UserID,
			Username: creator.Username,
			JoinedAt: now,
		}},
		PendingInvites: []models.PendingInvite{},
		CreatedAt:      now,
	}

	// Invite codes are committed only when globally unique. On a collision
	// the storage layer reports it and a fresh code is tried.
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		chat.InviteCode = newInviteCode()
		err = s.repo.PrivateChat().Create(ctx, chat)
		if err == nil {
			s.logger.Info("chat created", "chat_id", chat.ChatID, "creator_id", creator.UserID)
			return chat, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateInviteCode) {
			return nil, fmt.Errorf("store chat: %w", err)
		}
	}
	return nil, ErrInviteCodeExhausted
}

func (s *privateChatService) ListChats(ctx context.Context, userID string) (*ChatListResponse, error) {
	chats, err := s.repo.PrivateChat().ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	if chats == nil {
		chats = []*models.PrivateChat{}
	}
	return &ChatListResponse{Chats: chats}, nil
}

func (s *privateChatService) GetChat(ctx context.Context, chatID, userID string) (*models.PrivateChat, error) {
	chat, err := s.getChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsMember(userID) && !chat.IsPending(userID) {
		return nil, ErrNotMember
	}
	return chat, nil
}

func (s *privateChatService) RequestJoin(ctx context.Context, userID string, req JoinChatRequest) (*JoinChatResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	chat, err := s.repo.PrivateChat().GetByInviteCode(ctx, strings.ToUpper(req.InviteCode))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("lookup chat by code: %w", err)
	}

	if chat.IsMember(userID) {
		return nil, ErrAlreadyMember
	}

	// A join via code always waits for consent; duplicates leave a single
	// pending entry.
	invite := models.PendingInvite{
		UserID:    user.UserID,
		Username:  user.Username,
		InvitedAt: time.Now(),
	}
	if err := s.repo.PrivateChat().AddPendingInvite(ctx, chat.ChatID, invite); err != nil {
		return nil, fmt.Errorf("add pending invite: %w", err)
	}

	return &JoinChatResponse{ChatID: chat.ChatID, ChatName: chat.Name, Status: "pending"}, nil
}

func (s *privateChatService) SendInvite(ctx context.Context, chatID, inviterID string, req SendInviteRequest) (*models.PrivateChat, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	chat, err := s.getChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsMember(inviterID) {
		return nil, ErrNotMember
	}
	if chat.IsMember(req.TargetUserID) {
		return nil, ErrAlreadyMember
	}

	target, err := s.repo.User().GetByID(ctx, req.TargetUserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve invitee: %w", err)
	}

	invite := models.PendingInvite{
		UserID:    target.UserID,
		Username:  target.Username,
		InvitedAt: time.Now(),
	}
	if err := s.repo.PrivateChat().AddPendingInvite(ctx, chatID, invite); err != nil {
		return nil, fmt.Errorf("add pending invite: %w", err)
	}

	s.logger.Info("invite sent", "chat_id", chatID, "inviter_id", inviterID, "target_id", target.UserID)
	return s.getChat(ctx, chatID)
}

func (s *privateChatService) ResolveConsent(ctx context.Context, chatID, userID string, req ConsentRequest) (*ConsentResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if *req.Accept {
		err = s.repo.PrivateChat().AcceptInvite(ctx, chatID, userID, user.Username, time.Now())
	} else {
		err = s.repo.PrivateChat().RejectInvite(ctx, chatID, userID)
	}
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoPendingInvite):
			return nil, ErrNoPendingInvite
		case repositories.IsNotFoundError(err):
			return nil, ErrChatNotFound
		default:
			return nil, fmt.Errorf("resolve consent: %w", err)
		}
	}

	status := "declined"
	if *req.Accept {
		status = "member"
		s.publisher.Publish(events.PrivateRoom(chatID), events.EventUserStatus, map[string]any{
			"userId":   userID,
			"username": user.Username,
			"status":   "joined",
		})
	}
	s.logger.Info("consent resolved", "chat_id", chatID, "user_id", userID, "status", status)
	return &ConsentResponse{ChatID: chatID, Status: status}, nil
}

func (s *privateChatService) History(ctx context.Context, chatID, userID string) (*ChatHistoryResponse, error) {
	if err := s.requireMember(ctx, chatID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.Message().ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return &ChatHistoryResponse{Messages: msgs}, nil
}

func (s *privateChatService) SendMessage(ctx context.Context, chatID, userID string, req SendMessageRequest) (*models.Message, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	if err := s.requireMember(ctx, chatID, userID); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	chatRef := chatID
	msg := &models.Message{
		MessageID: uuid.NewString(),
		UserID:    user.UserID,
		Username:  user.Username,
		Content:   req.Content,
		Type:      models.MessagePrivate,
		ChatID:    &chatRef,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	s.publisher.Publish(events.PrivateRoom(chatID), events.EventNewMessage, msg)
	return msg, nil
}

func (s *privateChatService) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	chat, err := s.repo.PrivateChat().GetByID(ctx, chatID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return chat.IsMember(userID), nil
}

func (s *privateChatService) requireMember(ctx context.Context, chatID, userID string) error {
	chat, err := s.getChat(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.IsMember(userID) {
		return ErrNotMember
	}
	return nil
}

func (s *privateChatService) getChat(ctx context.Context, chatID string) (*models.PrivateChat, error) {
	chat, err := s.repo.PrivateChat().GetByID(ctx, chatID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return chat, nil
}
