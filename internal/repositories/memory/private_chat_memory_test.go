package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

func newChat(chatID, code, creatorID string) *models.PrivateChat {
	now := time.Now()
	return &models.PrivateChat{
		ChatID:     chatID,
		Name:       "chat " + chatID,
		CreatorID:  creatorID,
		InviteCode: code,
		Members: []models.ChatMember{
			{UserID: creatorID, Username: creatorID, JoinedAt: now},
		},
		PendingInvites: []models.PendingInvite{},
		CreatedAt:      now,
	}
}

func TestCreateRejectsDuplicateInviteCode(t *testing.T) {
	store := newPrivateChatStore()
	ctx := context.Background()

	if err := store.Create(ctx, newChat("c1", "ABC123", "u1")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := store.Create(ctx, newChat("c2", "ABC123", "u2"))
	if !errors.Is(err, repositories.ErrDuplicateInviteCode) {
		t.Errorf("err = %v, want ErrDuplicateInviteCode", err)
	}

	if err := store.Create(ctx, newChat("c2", "XYZ789", "u2")); err != nil {
		t.Errorf("Create with fresh code: %v", err)
	}
}

func TestInviteCodeLookupRoundTrip(t *testing.T) {
	store := newPrivateChatStore()
	ctx := context.Background()

	if err := store.Create(ctx, newChat("c1", "ABC123", "u1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	chat, err := store.GetByInviteCode(ctx, "ABC123")
	if err != nil {
		t.Fatalf("GetByInviteCode: %v", err)
	}
	if chat.ChatID != "c1" {
		t.Errorf("ChatID = %q, want c1", chat.ChatID)
	}

	if _, err := store.GetByInviteCode(ctx, "NOPE99"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("unknown code err = %v, want ErrNotFound", err)
	}
}

func TestAcceptInviteMovesBetweenLists(t *testing.T) {
	store := newPrivateChatStore()
	ctx := context.Background()

	if err := store.Create(ctx, newChat("c1", "ABC123", "u1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	invite := models.PendingInvite{UserID: "u2", Username: "u2", InvitedAt: time.Now()}
	if err := store.AddPendingInvite(ctx, "c1", invite); err != nil {
		t.Fatalf("AddPendingInvite: %v", err)
	}

	if err := store.AcceptInvite(ctx, "c1", "u2", "u2", time.Now()); err != nil {
		t.Fatalf("AcceptInvite: %v", err)
	}

	chat, _ := store.GetByID(ctx, "c1")
	if !chat.IsMember("u2") {
		t.Error("u2 not a member after accept")
	}
	if chat.IsPending("u2") {
		t.Error("u2 still pending after accept")
	}

	// The invite was consumed.
	if err := store.AcceptInvite(ctx, "c1", "u2", "u2", time.Now()); !errors.Is(err, repositories.ErrNoPendingInvite) {
		t.Errorf("second accept err = %v, want ErrNoPendingInvite", err)
	}
}

func TestAddPendingInviteIdempotent(t *testing.T) {
	store := newPrivateChatStore()
	ctx := context.Background()

	if err := store.Create(ctx, newChat("c1", "ABC123", "u1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	invite := models.PendingInvite{UserID: "u2", Username: "u2", InvitedAt: time.Now()}
	for i := 0; i < 3; i++ {
		if err := store.AddPendingInvite(ctx, "c1", invite); err != nil {
			t.Fatalf("AddPendingInvite %d: %v", i, err)
		}
	}

	// Members never re-enter the pending list.
	member := models.PendingInvite{UserID: "u1", Username: "u1", InvitedAt: time.Now()}
	if err := store.AddPendingInvite(ctx, "c1", member); err != nil {
		t.Fatalf("AddPendingInvite for member: %v", err)
	}

	chat, _ := store.GetByID(ctx, "c1")
	if len(chat.PendingInvites) != 1 {
		t.Errorf("pending list = %v, want single u2 entry", chat.PendingInvites)
	}
	if chat.IsPending("u1") {
		t.Error("existing member landed on the pending list")
	}
}

func TestRejectInviteLeavesMembersUntouched(t *testing.T) {
	store := newPrivateChatStore()
	ctx := context.Background()

	if err := store.Create(ctx, newChat("c1", "ABC123", "u1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	invite := models.PendingInvite{UserID: "u2", Username: "u2", InvitedAt: time.Now()}
	if err := store.AddPendingInvite(ctx, "c1", invite); err != nil {
		t.Fatalf("AddPendingInvite: %v", err)
	}

	if err := store.RejectInvite(ctx, "c1", "u2"); err != nil {
		t.Fatalf("RejectInvite: %v", err)
	}

	chat, _ := store.GetByID(ctx, "c1")
	if chat.IsMember("u2") || chat.IsPending("u2") {
		t.Error("u2 should be in neither list after reject")
	}
	if !chat.IsMember("u1") {
		t.Error("creator membership lost")
	}
}

func TestGetByIDReturnsCopies(t *testing.T) {
	store := newPrivateChatStore()
	ctx := context.Background()

	if err := store.Create(ctx, newChat("c1", "ABC123", "u1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	chat, _ := store.GetByID(ctx, "c1")
	chat.Members = append(chat.Members, models.ChatMember{UserID: "intruder"})

	fresh, _ := store.GetByID(ctx, "c1")
	if fresh.IsMember("intruder") {
		t.Error("mutating a returned chat leaked into the store")
	}
}
