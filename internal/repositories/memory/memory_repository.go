// Package memory implements the repository interfaces on process-local maps.
// It is the startup fallback when no database is reachable and the test
// double for every service test. Data does not survive a restart.
package memory

import (
	"context"

	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

// Repository implements repositories.Repository on in-memory maps.
type Repository struct {
	user        *userStore
	message     *messageStore
	question    *questionStore
	privateChat *privateChatStore
	exam        *examStore
}

func NewRepository() *Repository {
	return &Repository{
		user:        newUserStore(),
		message:     newMessageStore(),
		question:    newQuestionStore(),
		privateChat: newPrivateChatStore(),
		exam:        newExamStore(),
	}
}

func (r *Repository) User() repositories.UserRepository               { return r.user }
func (r *Repository) Message() repositories.MessageRepository         { return r.message }
func (r *Repository) Question() repositories.QuestionRepository       { return r.question }
func (r *Repository) PrivateChat() repositories.PrivateChatRepository { return r.privateChat }
func (r *Repository) Exam() repositories.ExamRepository               { return r.exam }

func (r *Repository) Ping(ctx context.Context) error { return nil }

func (r *Repository) Close() error { return nil }
