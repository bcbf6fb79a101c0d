package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall-service/internal/cache"
	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

type examService struct {
	repo      repositories.Repository
	cache     *cache.Helper
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExamService(repo repositories.Repository, cacheHelper *cache.Helper, logger *slog.Logger, v *validator.Validator) ExamService {
	return &examService{repo: repo, cache: cacheHelper, logger: logger, validator: v}
}

func (s *examService) List(ctx context.Context, userID string, subject *models.Subject) (*ExamListResponse, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	filters := repositories.ExamFilters{
		GradeLevel: user.GradeLevel,
		Subject:    subject,
	}
	exams, err := s.repo.Exam().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	summaries := make([]*models.ExamSummary, 0, len(exams))
	for _, e := range exams {
		summaries = append(summaries, e.Summary())
	}
	return &ExamListResponse{Exams: summaries}, nil
}

func (s *examService) Get(ctx context.Context, examID, userID string) (*models.SanitizedExam, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	// Correct answers never reach the cache; only the sanitized projection
	// is stored.
	var cached models.SanitizedExam
	if err := s.cache.Get(ctx, examID, &cached); err == nil {
		if err := s.checkGradeLevel(user, cached.GradeLevel); err != nil {
			return nil, err
		}
		return &cached, nil
	}

	exam, err := s.getExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.checkGradeLevel(user, exam.GradeLevel); err != nil {
		return nil, err
	}

	sanitized := exam.Sanitized()
	if err := s.cache.Set(ctx, examID, sanitized, cache.ExamTTL); err != nil {
		s.logger.Warn("cache exam", "exam_id", examID, "error", err)
	}
	return sanitized, nil
}

func (s *examService) Submit(ctx context.Context, examID, userID string, req SubmitExamRequest) (*SubmissionResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	exam, err := s.getExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	if len(req.Answers) != len(exam.Questions) {
		return nil, NewValidationError("answers",
			fmt.Sprintf("expected %d answers", len(exam.Questions)), len(req.Answers))
	}

	score := 0
	for i, q := range exam.Questions {
		if req.Answers[i] == q.CorrectAnswer {
			score += q.Points
		}
	}

	percentage := 0.0
	if exam.TotalPoints > 0 {
		percentage = math.Round(float64(score)/float64(exam.TotalPoints)*100*100) / 100
	}

	sub := &models.Submission{
		SubmissionID: uuid.NewString(),
		ExamID:       examID,
		UserID:       userID,
		Answers:      req.Answers,
		Score:        score,
		TotalPoints:  exam.TotalPoints,
		Percentage:   percentage,
		SubmittedAt:  time.Now(),
	}
	if err := s.repo.Exam().CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	s.logger.Info("exam submitted",
		"exam_id", examID, "user_id", userID, "score", score, "percentage", percentage)

	return &SubmissionResponse{
		SubmissionID: sub.SubmissionID,
		ExamID:       examID,
		Score:        score,
		TotalPoints:  exam.TotalPoints,
		Percentage:   percentage,
	}, nil
}

func (s *examService) Result(ctx context.Context, examID, userID string) (*models.Submission, error) {
	sub, err := s.repo.Exam().GetSubmission(ctx, examID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

func (s *examService) checkGradeLevel(user *models.User, examGrade int) error {
	if user.GradeLevel != nil && *user.GradeLevel != examGrade {
		return ErrGradeLevelMismatch
	}
	return nil
}

func (s *examService) getExam(ctx context.Context, examID string) (*models.Exam, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}
	return exam, nil
}
