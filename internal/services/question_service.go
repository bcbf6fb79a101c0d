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

type questionService struct {
	repo      repositories.Repository
	publisher *events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, publisher *events.Publisher, logger *slog.Logger, v *validator.Validator) QuestionService {
	return &questionService{repo: repo, publisher: publisher, logger: logger, validator: v}
}

func (s *questionService) Create(ctx context.Context, userID string, req CreateQuestionRequest) (*models.Question, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	subject := models.Subject(req.Subject)
	if subject == "" {
		subject = models.SubjectOther
	}

	q := &models.Question{
		QuestionID: uuid.NewString(),
		UserID:     user.UserID,
		Username:   user.Username,
		Title:      req.Title,
		Content:    req.Content,
		Subject:    subject,
		Replies:    []models.Reply{},
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Question().Create(ctx, q); err != nil {
		return nil, fmt.Errorf("store question: %w", err)
	}

	s.publisher.Publish(events.GlobalRoom, events.EventNewQuestion, q)
	return q, nil
}

func (s *questionService) List(ctx context.Context, subject *models.Subject) (*QuestionListResponse, error) {
	if subject != nil && !models.ValidSubject(*subject) {
		return nil, NewValidationError("subject", "unknown subject", string(*subject))
	}

	questions, err := s.repo.Question().List(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []*models.Question{}
	}
	return &QuestionListResponse{Questions: questions}, nil
}

func (s *questionService) Get(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := s.repo.Question().GetByID(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (s *questionService) Reply(ctx context.Context, questionID, userID string, req ReplyRequest) (*models.Question, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	reply := models.Reply{
		UserID:    user.UserID,
		Username:  user.Username,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Question().AppendReply(ctx, questionID, reply); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("append reply: %w", err)
	}

	q, err := s.repo.Question().GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("reload question: %w", err)
	}

	s.publisher.Publish(events.GlobalRoom, events.EventNewReply, map[string]any{
		"questionId": questionID,
		"reply":      reply,
	})
	return q, nil
}
