package services

import (
	"context"
	"errors"
	"testing"
)

func TestSubmitExamScoring(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	user := seedUser(t, repo, "student", nil)
	exam := seedExam(t, repo, 5, []int{2, 3}, []int{1, 1})

	// First answer right (2 points), second wrong.
	resp, err := sm.Exam().Submit(ctx, exam.ExamID, user.UserID, SubmitExamRequest{Answers: []int{1, 0}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.Score != 2 {
		t.Errorf("Score = %d, want 2", resp.Score)
	}
	if resp.TotalPoints != 5 {
		t.Errorf("TotalPoints = %d, want 5", resp.TotalPoints)
	}
	if resp.Percentage != 40.0 {
		t.Errorf("Percentage = %v, want 40", resp.Percentage)
	}
}

func TestSubmitExamPercentageRounding(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	user := seedUser(t, repo, "student", nil)
	exam := seedExam(t, repo, 5, []int{1, 1, 1}, []int{0, 0, 0})

	resp, err := sm.Exam().Submit(ctx, exam.ExamID, user.UserID, SubmitExamRequest{Answers: []int{0, 1, 1}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// 1/3 of the points.
	if resp.Percentage != 33.33 {
		t.Errorf("Percentage = %v, want 33.33", resp.Percentage)
	}
}

func TestSubmitExamAnswerCountMismatch(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	user := seedUser(t, repo, "student", nil)
	exam := seedExam(t, repo, 5, []int{2, 3}, []int{1, 1})

	_, err := sm.Exam().Submit(ctx, exam.ExamID, user.UserID, SubmitExamRequest{Answers: []int{1}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Field != "answers" {
		t.Errorf("Field = %q, want answers", verr.Field)
	}
}

func TestSubmitExamUnknownExam(t *testing.T) {
	sm, repo := newTestManager(t)
	user := seedUser(t, repo, "student", nil)

	_, err := sm.Exam().Submit(context.Background(), "missing", user.UserID, SubmitExamRequest{Answers: []int{0}})
	if !errors.Is(err, ErrExamNotFound) {
		t.Errorf("err = %v, want ErrExamNotFound", err)
	}
}

func TestGetExamStripsAnswers(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	user := seedUser(t, repo, "student", nil)
	exam := seedExam(t, repo, 5, []int{2, 3}, []int{1, 2})

	got, err := sm.Exam().Get(ctx, exam.ExamID, user.UserID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(got.Questions))
	}
	for i, q := range got.Questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
	}
	if got.TotalPoints != 5 {
		t.Errorf("TotalPoints = %d, want 5", got.TotalPoints)
	}
}

func TestGetExamGradeLevelGate(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	exam := seedExam(t, repo, 5, []int{1}, []int{0})

	sameGrade := seedUser(t, repo, "fifth-grader", intPtr(5))
	if _, err := sm.Exam().Get(ctx, exam.ExamID, sameGrade.UserID); err != nil {
		t.Errorf("same grade Get: %v", err)
	}

	otherGrade := seedUser(t, repo, "eighth-grader", intPtr(8))
	if _, err := sm.Exam().Get(ctx, exam.ExamID, otherGrade.UserID); !errors.Is(err, ErrGradeLevelMismatch) {
		t.Errorf("err = %v, want ErrGradeLevelMismatch", err)
	}

	// No grade level set means no gate.
	noGrade := seedUser(t, repo, "undeclared", nil)
	if _, err := sm.Exam().Get(ctx, exam.ExamID, noGrade.UserID); err != nil {
		t.Errorf("no grade Get: %v", err)
	}
}

func TestListExamsFiltersByGradeAndSubject(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	seedExam(t, repo, 5, []int{1}, []int{0})
	seedExam(t, repo, 8, []int{1}, []int{0})

	user := seedUser(t, repo, "fifth-grader", intPtr(5))
	resp, err := sm.Exam().List(ctx, user.UserID, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Exams) != 1 {
		t.Fatalf("got %d exams, want 1", len(resp.Exams))
	}
	if resp.Exams[0].GradeLevel != 5 {
		t.Errorf("GradeLevel = %d, want 5", resp.Exams[0].GradeLevel)
	}
	if resp.Exams[0].QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1", resp.Exams[0].QuestionCount)
	}
}

func TestExamResult(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	user := seedUser(t, repo, "student", nil)
	exam := seedExam(t, repo, 5, []int{2, 3}, []int{1, 1})

	if _, err := sm.Exam().Result(ctx, exam.ExamID, user.UserID); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("pre-submit Result err = %v, want ErrExamNotFound", err)
	}

	if _, err := sm.Exam().Submit(ctx, exam.ExamID, user.UserID, SubmitExamRequest{Answers: []int{1, 1}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	sub, err := sm.Exam().Result(ctx, exam.ExamID, user.UserID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if sub.Score != 5 || sub.Percentage != 100.0 {
		t.Errorf("Score = %d Percentage = %v, want 5 and 100", sub.Score, sub.Percentage)
	}
}
