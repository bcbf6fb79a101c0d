package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type questionStore struct {
	mu        sync.RWMutex
	questions map[string]*models.Question // keyed by questionId
	order     []string                    // creation order for stable listing
}

func newQuestionStore() *questionStore {
	return &questionStore{questions: make(map[string]*models.Question)}
}

func (s *questionStore) Create(ctx context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := cloneQuestion(q)
	s.questions[copied.QuestionID] = copied
	s.order = append(s.order, copied.QuestionID)
	return nil
}

func (s *questionStore) GetByID(ctx context.Context, questionID string) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[questionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneQuestion(q), nil
}

func (s *questionStore) List(ctx context.Context, subject *models.Subject) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Question
	for _, id := range s.order {
		q := s.questions[id]
		if subject != nil && q.Subject != *subject {
			continue
		}
		out = append(out, cloneQuestion(q))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *questionStore) AppendReply(ctx context.Context, questionID string, reply models.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok {
		return repositories.ErrNotFound
	}
	q.Replies = append(q.Replies, reply)
	return nil
}

func cloneQuestion(q *models.Question) *models.Question {
	copied := *q
	copied.Replies = make([]models.Reply, len(q.Replies))
	copy(copied.Replies, q.Replies)
	return &copied
}
