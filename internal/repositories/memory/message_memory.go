package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/studyhall-app/studyhall-service/internal/models"
)

type messageStore struct {
	mu       sync.RWMutex
	messages []*models.Message // insertion order
}

func newMessageStore() *messageStore {
	return &messageStore{}
}

func (s *messageStore) Create(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *msg
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *messageStore) ListGlobal(ctx context.Context) ([]*models.Message, error) {
	return s.list(func(m *models.Message) bool {
		return m.Type == models.MessageGlobal
	})
}

func (s *messageStore) ListByChat(ctx context.Context, chatID string) ([]*models.Message, error) {
	return s.list(func(m *models.Message) bool {
		return m.Type == models.MessagePrivate && m.ChatID != nil && *m.ChatID == chatID
	})
}

// list returns matching messages newest first, capped at the history limit.
func (s *messageStore) list(match func(*models.Message) bool) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Message
	for _, m := range s.messages {
		if match(m) {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > models.MessageHistoryLimit {
		out = out[:models.MessageHistoryLimit]
	}
	return out, nil
}
