package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

func TestCreateQuestionDefaultsSubject(t *testing.T) {
	sm, repo := newTestManager(t)
	user := seedUser(t, repo, "asker", nil)

	q, err := sm.Question().Create(context.Background(), user.UserID, CreateQuestionRequest{
		Title:   "How do fractions work?",
		Content: "I do not get denominators.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.Subject != models.SubjectOther {
		t.Errorf("Subject = %q, want other", q.Subject)
	}
	if q.Username != "asker" {
		t.Errorf("Username = %q, want asker", q.Username)
	}
	if len(q.Replies) != 0 {
		t.Errorf("Replies = %v, want empty", q.Replies)
	}
}

func TestCreateQuestionRejectsOversizedTitle(t *testing.T) {
	sm, repo := newTestManager(t)
	user := seedUser(t, repo, "asker", nil)

	_, err := sm.Question().Create(context.Background(), user.UserID, CreateQuestionRequest{
		Title:   strings.Repeat("x", models.MaxQuestionTitleLength+1),
		Content: "body",
	})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
}

func TestListQuestionsFilteredBySubject(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()
	user := seedUser(t, repo, "asker", nil)

	mustCreate := func(title, subject string) {
		t.Helper()
		if _, err := sm.Question().Create(ctx, user.UserID, CreateQuestionRequest{
			Title: title, Content: "body", Subject: subject,
		}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}
	mustCreate("algebra", "math")
	mustCreate("cells", "science")

	math := models.SubjectMath
	resp, err := sm.Question().List(ctx, &math)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Questions) != 1 || resp.Questions[0].Title != "algebra" {
		t.Errorf("questions = %v, want only algebra", resp.Questions)
	}

	all, err := sm.Question().List(ctx, nil)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(all.Questions))
	}
}

func TestReplyAppendsInOrder(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()

	asker := seedUser(t, repo, "asker", nil)
	helper := seedUser(t, repo, "helper", nil)

	q, err := sm.Question().Create(ctx, asker.UserID, CreateQuestionRequest{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, content := range []string{"first", "second", "third"} {
		if _, err := sm.Question().Reply(ctx, q.QuestionID, helper.UserID, ReplyRequest{Content: content}); err != nil {
			t.Fatalf("Reply %s: %v", content, err)
		}
	}

	got, err := sm.Question().Get(ctx, q.QuestionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Replies) != 3 {
		t.Fatalf("got %d replies, want 3", len(got.Replies))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got.Replies[i].Content != want {
			t.Errorf("reply %d = %q, want %q", i, got.Replies[i].Content, want)
		}
	}
}

func TestReplyToUnknownQuestion(t *testing.T) {
	sm, repo := newTestManager(t)
	user := seedUser(t, repo, "helper", nil)

	_, err := sm.Question().Reply(context.Background(), "missing", user.UserID, ReplyRequest{Content: "hi"})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}
