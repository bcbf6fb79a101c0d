package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type privateChatStore struct {
	mu     sync.RWMutex
	chats  map[string]*models.PrivateChat // keyed by chatId
	byCode map[string]string              // inviteCode -> chatId
}

func newPrivateChatStore() *privateChatStore {
	return &privateChatStore{
		chats:  make(map[string]*models.PrivateChat),
		byCode: make(map[string]string),
	}
}

func (s *privateChatStore) Create(ctx context.Context, chat *models.PrivateChat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[chat.InviteCode]; taken {
		return repositories.ErrDuplicateInviteCode
	}
	copied := cloneChat(chat)
	s.chats[copied.ChatID] = copied
	s.byCode[copied.InviteCode] = copied.ChatID
	return nil
}

func (s *privateChatStore) GetByID(ctx context.Context, chatID string) (*models.PrivateChat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneChat(chat), nil
}

func (s *privateChatStore) GetByInviteCode(ctx context.Context, code string) (*models.PrivateChat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chatID, ok := s.byCode[code]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneChat(s.chats[chatID]), nil
}

func (s *privateChatStore) ListByMember(ctx context.Context, userID string) ([]*models.PrivateChat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.PrivateChat
	for _, chat := range s.chats {
		if chat.IsMember(userID) {
			out = append(out, cloneChat(chat))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *privateChatStore) AddPendingInvite(ctx context.Context, chatID string, invite models.PendingInvite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return repositories.ErrNotFound
	}
	// member or already pending: no-op, a user sits in at most one list
	if chat.IsMember(invite.UserID) || chat.IsPending(invite.UserID) {
		return nil
	}
	chat.PendingInvites = append(chat.PendingInvites, invite)
	return nil
}

func (s *privateChatStore) AcceptInvite(ctx context.Context, chatID, userID, username string, joinedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !removePending(chat, userID) {
		return repositories.ErrNoPendingInvite
	}
	chat.Members = append(chat.Members, models.ChatMember{
		UserID:   userID,
		Username: username,
		JoinedAt: joinedAt,
	})
	return nil
}

func (s *privateChatStore) RejectInvite(ctx context.Context, chatID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !removePending(chat, userID) {
		return repositories.ErrNoPendingInvite
	}
	return nil
}

func removePending(chat *models.PrivateChat, userID string) bool {
	for i, p := range chat.PendingInvites {
		if p.UserID == userID {
			chat.PendingInvites = append(chat.PendingInvites[:i], chat.PendingInvites[i+1:]...)
			return true
		}
	}
	return false
}

func cloneChat(chat *models.PrivateChat) *models.PrivateChat {
	copied := *chat
	copied.Members = make([]models.ChatMember, len(chat.Members))
	copy(copied.Members, chat.Members)
	copied.PendingInvites = make([]models.PendingInvite, len(chat.PendingInvites))
	copy(copied.PendingInvites, chat.PendingInvites)
	return &copied
}
