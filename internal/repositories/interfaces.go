package repositories

import (
	"context"
	"time"

	"github.com/studyhall-app/studyhall-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// StudentFilters narrows classmate lookups. All fields optional except the
// excluded caller.
type StudentFilters struct {
	GradeLevel    *int
	Subject       *string
	Query         *string // matched case-insensitively against username and bio
	ExcludeUserID string
	Limit         int
}

// ExamFilters narrows exam listings.
type ExamFilters struct {
	GradeLevel *int
	Subject    *models.Subject
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Username   *string
	GradeLevel *int
	Bio        *string
	Interests  []string
	Subjects   []string
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByOAuth(ctx context.Context, provider, oauthID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error)
	TouchLastActive(ctx context.Context, userID string, at time.Time) error
	Search(ctx context.Context, filters StudentFilters) ([]*models.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error

	// ListGlobal returns at most models.MessageHistoryLimit global messages,
	// newest first.
	ListGlobal(ctx context.Context) ([]*models.Message, error)

	// ListByChat returns at most models.MessageHistoryLimit private messages
	// for the chat, newest first.
	ListByChat(ctx context.Context, chatID string) ([]*models.Message, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, q *models.Question) error
	GetByID(ctx context.Context, questionID string) (*models.Question, error)
	List(ctx context.Context, subject *models.Subject) ([]*models.Question, error)

	// AppendReply appends to the question's reply list; order of appends from
	// a single caller is preserved.
	AppendReply(ctx context.Context, questionID string, reply models.Reply) error
}

// PrivateChatRepository exposes the membership transitions as single atomic
// steps. Implementations must guarantee that a userId never ends up in both
// the member and pending lists of one chat, and that AcceptInvite observes no
// intermediate state with the user in neither list.
type PrivateChatRepository interface {
	// Create persists the chat and fails with ErrDuplicateInviteCode when the
	// invite code is already taken. Callers regenerate and retry.
	Create(ctx context.Context, chat *models.PrivateChat) error

	GetByID(ctx context.Context, chatID string) (*models.PrivateChat, error)
	GetByInviteCode(ctx context.Context, code string) (*models.PrivateChat, error)
	ListByMember(ctx context.Context, userID string) ([]*models.PrivateChat, error)

	// AddPendingInvite is idempotent: a user already pending stays pending
	// with a single entry. A user already a member is left untouched; the
	// caller checks membership first.
	AddPendingInvite(ctx context.Context, chatID string, invite models.PendingInvite) error

	// AcceptInvite atomically moves userID from pendingInvites to members.
	// Fails with ErrNoPendingInvite when userID is not pending.
	AcceptInvite(ctx context.Context, chatID, userID, username string, joinedAt time.Time) error

	// RejectInvite removes userID from pendingInvites only.
	// Fails with ErrNoPendingInvite when userID is not pending.
	RejectInvite(ctx context.Context, chatID, userID string) error
}

type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, examID string) (*models.Exam, error)
	List(ctx context.Context, filters ExamFilters) ([]*models.Exam, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	GetSubmission(ctx context.Context, examID, userID string) (*models.Submission, error)
}

// Repository aggregates the per-domain repositories behind one backend.
type Repository interface {
	User() UserRepository
	Message() MessageRepository
	Question() QuestionRepository
	PrivateChat() PrivateChatRepository
	Exam() ExamRepository

	Ping(ctx context.Context) error
	Close() error
}
