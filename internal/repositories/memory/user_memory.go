package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type userStore struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by userId
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]*models.User)}
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[u.UserID] = &u
	return nil
}

func (s *userStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *userStore) GetByOAuth(ctx context.Context, provider, oauthID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.OAuthProvider != nil && *u.OAuthProvider == provider &&
			u.OAuthID != nil && *u.OAuthID == oauthID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *userStore) UpdateProfile(ctx context.Context, userID string, update repositories.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.GradeLevel != nil {
		u.GradeLevel = update.GradeLevel
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Interests != nil {
		u.Interests = update.Interests
	}
	if update.Subjects != nil {
		u.Subjects = update.Subjects
	}
	copied := *u
	return &copied, nil
}

func (s *userStore) TouchLastActive(ctx context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.LastActive = at
	return nil
}

func (s *userStore) Search(ctx context.Context, filters repositories.StudentFilters) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.User
	for _, u := range s.users {
		if u.UserID == filters.ExcludeUserID {
			continue
		}
		if filters.GradeLevel != nil && (u.GradeLevel == nil || *u.GradeLevel != *filters.GradeLevel) {
			continue
		}
		if filters.Subject != nil && !containsFold(u.Subjects, *filters.Subject) {
			continue
		}
		if filters.Query != nil {
			q := strings.ToLower(*filters.Query)
			if !strings.Contains(strings.ToLower(u.Username), q) &&
				!strings.Contains(strings.ToLower(u.Bio), q) {
				continue
			}
		}
		copied := *u
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
