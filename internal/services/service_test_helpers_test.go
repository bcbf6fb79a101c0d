package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall-service/internal/auth"
	"github.com/studyhall-app/studyhall-service/internal/cache"
	"github.com/studyhall-app/studyhall-service/internal/events"
	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/repositories/memory"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

func newTestManager(t *testing.T) (ServiceManager, repositories.Repository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := events.NewBus(logger)
	t.Cleanup(func() { bus.Close() })

	repo := memory.NewRepository()
	sm := NewServiceManager(Dependencies{
		Repo:      repo,
		Tokens:    auth.NewTokenManager("test-secret", time.Hour),
		Publisher: events.NewPublisher(bus, logger),
		ExamCache: cache.NewHelper(nil, "exam:"),
		Logger:    logger,
		Validator: validator.New(),
	})
	return sm, repo
}

func seedUser(t *testing.T, repo repositories.Repository, username string, grade *int) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		UserID:     "anon_" + uuid.NewString(),
		Username:   username,
		IsVerified: true,
		GradeLevel: grade,
		Interests:  []string{},
		Subjects:   []string{},
		CreatedAt:  now,
		LastActive: now,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedExam(t *testing.T, repo repositories.Repository, grade int, points []int, correct []int) *models.Exam {
	t.Helper()
	exam := &models.Exam{
		ExamID:     uuid.NewString(),
		Title:      "Seeded Exam",
		Subject:    models.SubjectMath,
		GradeLevel: grade,
		Duration:   30,
		CreatedAt:  time.Now(),
	}
	for i := range points {
		exam.Questions = append(exam.Questions, models.ExamQuestion{
			QuestionText:  "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: correct[i],
			Points:        points[i],
		})
		exam.TotalPoints += points[i]
	}
	if err := repo.Exam().Create(context.Background(), exam); err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	return exam
}

func intPtr(n int) *int { return &n }
