package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type examStore struct {
	mu          sync.RWMutex
	exams       map[string]*models.Exam // keyed by examId
	submissions []*models.Submission    // append-only
}

func newExamStore() *examStore {
	return &examStore{exams: make(map[string]*models.Exam)}
}

func (s *examStore) Create(ctx context.Context, exam *models.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := cloneExam(exam)
	s.exams[copied.ExamID] = copied
	return nil
}

func (s *examStore) GetByID(ctx context.Context, examID string) (*models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exam, ok := s.exams[examID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneExam(exam), nil
}

func (s *examStore) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Exam
	for _, exam := range s.exams {
		if filters.GradeLevel != nil && exam.GradeLevel != *filters.GradeLevel {
			continue
		}
		if filters.Subject != nil && exam.Subject != *filters.Subject {
			continue
		}
		out = append(out, cloneExam(exam))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExamID < out[j].ExamID })
	return out, nil
}

func (s *examStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sub
	copied.Answers = append([]int(nil), sub.Answers...)
	s.submissions = append(s.submissions, &copied)
	return nil
}

// GetSubmission returns the most recent submission by the user for the exam.
func (s *examStore) GetSubmission(ctx context.Context, examID, userID string) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.submissions) - 1; i >= 0; i-- {
		sub := s.submissions[i]
		if sub.ExamID == examID && sub.UserID == userID {
			copied := *sub
			copied.Answers = append([]int(nil), sub.Answers...)
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func cloneExam(exam *models.Exam) *models.Exam {
	copied := *exam
	copied.Questions = make([]models.ExamQuestion, len(exam.Questions))
	copy(copied.Questions, exam.Questions)
	return &copied
}
