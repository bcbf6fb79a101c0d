package services

import (
	"context"
	"log/slog"

	"github.com/studyhall-app/studyhall-service/internal/auth"
	"github.com/studyhall-app/studyhall-service/internal/cache"
	"github.com/studyhall-app/studyhall-service/internal/events"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

// ServiceManager wires every domain service over one repository and event
// publisher and hands them to the handler layer.
type ServiceManager interface {
	Auth() AuthService
	Chat() ChatService
	Question() QuestionService
	PrivateChat() PrivateChatService
	Exam() ExamService
	Student() StudentService

	Shutdown(ctx context.Context) error
}

type serviceManager struct {
	repo   repositories.Repository
	logger *slog.Logger

	authService        AuthService
	chatService        ChatService
	questionService    QuestionService
	privateChatService PrivateChatService
	examService        ExamService
	studentService     StudentService
}

// Dependencies carries everything the services need.
type Dependencies struct {
	Repo      repositories.Repository
	Tokens    *auth.TokenManager
	Publisher *events.Publisher
	ExamCache *cache.Helper
	Logger    *slog.Logger
	Validator *validator.Validator
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		repo:               deps.Repo,
		logger:             deps.Logger,
		authService:        NewAuthService(deps.Repo, deps.Tokens, deps.Logger, deps.Validator),
		chatService:        NewChatService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		questionService:    NewQuestionService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		privateChatService: NewPrivateChatService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		examService:        NewExamService(deps.Repo, deps.ExamCache, deps.Logger, deps.Validator),
		studentService:     NewStudentService(deps.Repo, deps.Logger, deps.Validator),
	}
}

func (sm *serviceManager) Auth() AuthService               { return sm.authService }
func (sm *serviceManager) Chat() ChatService               { return sm.chatService }
func (sm *serviceManager) Question() QuestionService       { return sm.questionService }
func (sm *serviceManager) PrivateChat() PrivateChatService { return sm.privateChatService }
func (sm *serviceManager) Exam() ExamService               { return sm.examService }
func (sm *serviceManager) Student() StudentService         { return sm.studentService }

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	return sm.repo.Close()
}
