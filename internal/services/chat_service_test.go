package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

func TestSendGlobalMessage(t *testing.T) {
	sm, repo := newTestManager(t)
	user := seedUser(t, repo, "alice", nil)

	msg, err := sm.Chat().SendGlobalMessage(context.Background(), user.UserID, SendMessageRequest{Content: "hello world"})
	if err != nil {
		t.Fatalf("SendGlobalMessage: %v", err)
	}
	if msg.Type != models.MessageGlobal {
		t.Errorf("Type = %q, want global", msg.Type)
	}
	if msg.ChatID != nil {
		t.Errorf("ChatID = %v, want nil for global messages", msg.ChatID)
	}
	if msg.Username != "alice" {
		t.Errorf("Username = %q, want alice", msg.Username)
	}
}

func TestSendGlobalMessageRejectsOversizedContent(t *testing.T) {
	sm, repo := newTestManager(t)
	user := seedUser(t, repo, "alice", nil)

	_, err := sm.Chat().SendGlobalMessage(context.Background(), user.UserID, SendMessageRequest{
		Content: strings.Repeat("x", models.MaxMessageContentLength+1),
	})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
}

func TestGlobalHistoryCappedNewestFirst(t *testing.T) {
	sm, repo := newTestManager(t)
	ctx := context.Background()
	user := seedUser(t, repo, "alice", nil)

	total := models.MessageHistoryLimit + 20
	for i := 0; i < total; i++ {
		if _, err := sm.Chat().SendGlobalMessage(ctx, user.UserID, SendMessageRequest{Content: fmt.Sprintf("msg-%d", i)}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	resp, err := sm.Chat().GlobalHistory(ctx)
	if err != nil {
		t.Fatalf("GlobalHistory: %v", err)
	}
	if len(resp.Messages) != models.MessageHistoryLimit {
		t.Fatalf("got %d messages, want %d", len(resp.Messages), models.MessageHistoryLimit)
	}
	if resp.Messages[0].Content != fmt.Sprintf("msg-%d", total-1) {
		t.Errorf("first message = %q, want the newest", resp.Messages[0].Content)
	}
}
