package services

import (
	"context"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type OAuthLoginRequest = validator.OAuthLoginRequest
type SendMessageRequest = validator.SendMessageRequest
type CreateQuestionRequest = validator.CreateQuestionRequest
type ReplyRequest = validator.ReplyRequest
type CreateChatRequest = validator.CreateChatRequest
type JoinChatRequest = validator.JoinChatRequest
type SendInviteRequest = validator.SendInviteRequest
type ConsentRequest = validator.ConsentRequest
type SubmitExamRequest = validator.SubmitExamRequest
type UpdateProfileRequest = validator.UpdateProfileRequest

// ===== RESPONSE DTOs =====

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  *models.User `json:"user,omitempty"`
}

type ChatHistoryResponse struct {
	Messages []*models.Message `json:"messages"`
}

type QuestionListResponse struct {
	Questions []*models.Question `json:"questions"`
}

type ChatListResponse struct {
	Chats []*models.PrivateChat `json:"chats"`
}

// JoinChatResponse is what a join-by-code requester gets back. The requester
// is not a member yet, so it carries the chat's identity only, not the
// member list or the invite code.
type JoinChatResponse struct {
	ChatID   string `json:"chatId"`
	ChatName string `json:"chatName"`
	Status   string `json:"status"` // always "pending"
}

type ConsentResponse struct {
	ChatID string `json:"chatId"`
	Status string `json:"status"` // "member" or "declined"
}

type SubmissionResponse struct {
	SubmissionID string  `json:"submissionId"`
	ExamID       string  `json:"examId"`
	Score        int     `json:"score"`
	TotalPoints  int     `json:"totalPoints"`
	Percentage   float64 `json:"percentage"`
}

type ExamListResponse struct {
	Exams []*models.ExamSummary `json:"exams"`
}

type StudentListResponse struct {
	Students []*models.PublicProfile `json:"students"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// LoginAnonymous mints a throwaway identity with a generated username.
	LoginAnonymous(ctx context.Context) (*AuthResponse, error)

	// LoginOAuth finds or creates the verified identity for an OAuth subject.
	LoginOAuth(ctx context.Context, req OAuthLoginRequest) (*AuthResponse, error)

	// VerifyToken checks a token and resolves its user.
	VerifyToken(ctx context.Context, token string) (*VerifyResponse, error)

	// CurrentUser resolves the caller's full record.
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type ChatService interface {
	SendGlobalMessage(ctx context.Context, userID string, req SendMessageRequest) (*models.Message, error)
	GlobalHistory(ctx context.Context) (*ChatHistoryResponse, error)
}

type QuestionService interface {
	Create(ctx context.Context, userID string, req CreateQuestionRequest) (*models.Question, error)
	List(ctx context.Context, subject *models.Subject) (*QuestionListResponse, error)
	Get(ctx context.Context, questionID string) (*models.Question, error)
	Reply(ctx context.Context, questionID, userID string, req ReplyRequest) (*models.Question, error)
}

type PrivateChatService interface {
	CreateChat(ctx context.Context, userID string, req CreateChatRequest) (*models.PrivateChat, error)
	ListChats(ctx context.Context, userID string) (*ChatListResponse, error)
	GetChat(ctx context.Context, chatID, userID string) (*models.PrivateChat, error)

	// RequestJoin puts the caller on the pending list of the chat behind
	// the invite code. Joining is never immediate.
	RequestJoin(ctx context.Context, userID string, req JoinChatRequest) (*JoinChatResponse, error)

	// SendInvite lets an existing member put another user on the pending list.
	SendInvite(ctx context.Context, chatID, inviterID string, req SendInviteRequest) (*models.PrivateChat, error)

	// ResolveConsent accepts or declines the caller's own pending invite.
	ResolveConsent(ctx context.Context, chatID, userID string, req ConsentRequest) (*ConsentResponse, error)

	History(ctx context.Context, chatID, userID string) (*ChatHistoryResponse, error)
	SendMessage(ctx context.Context, chatID, userID string, req SendMessageRequest) (*models.Message, error)

	// IsMember is the membership check used to gate realtime room joins.
	IsMember(ctx context.Context, chatID, userID string) (bool, error)
}

type ExamService interface {
	List(ctx context.Context, userID string, subject *models.Subject) (*ExamListResponse, error)
	Get(ctx context.Context, examID, userID string) (*models.SanitizedExam, error)
	Submit(ctx context.Context, examID, userID string, req SubmitExamRequest) (*SubmissionResponse, error)
	Result(ctx context.Context, examID, userID string) (*models.Submission, error)
}

type StudentService interface {
	Search(ctx context.Context, callerID string, gradeLevel *int, subject, query *string) (*StudentListResponse, error)
	Profile(ctx context.Context, userID string) (*models.PublicProfile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error)
}
