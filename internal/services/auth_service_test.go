package services

import (
	"context"
	"strings"
	"testing"
)

func TestLoginAnonymous(t *testing.T) {
	sm, _ := newTestManager(t)

	resp, err := sm.Auth().LoginAnonymous(context.Background())
	if err != nil {
		t.Fatalf("LoginAnonymous: %v", err)
	}

	if !strings.HasPrefix(resp.User.UserID, "anon_") {
		t.Errorf("UserID = %q, want anon_ prefix", resp.User.UserID)
	}
	if !strings.HasPrefix(resp.User.Username, "Anonymous_") {
		t.Errorf("Username = %q, want Anonymous_ prefix", resp.User.Username)
	}
	if !resp.User.IsAnonymous || resp.User.IsVerified {
		t.Errorf("flags = anonymous:%v verified:%v, want true/false", resp.User.IsAnonymous, resp.User.IsVerified)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}

	verify, err := sm.Auth().VerifyToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if !verify.Valid || verify.User.UserID != resp.User.UserID {
		t.Errorf("verify = %+v, want valid with same user", verify)
	}
}

func TestLoginOAuthCreatesThenReuses(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	email := "kim@example.com"
	req := OAuthLoginRequest{Provider: "google", OAuthID: "sub-123", Email: &email}

	first, err := sm.Auth().LoginOAuth(ctx, req)
	if err != nil {
		t.Fatalf("first LoginOAuth: %v", err)
	}
	if !strings.HasPrefix(first.User.UserID, "google_") {
		t.Errorf("UserID = %q, want google_ prefix", first.User.UserID)
	}
	if first.User.IsAnonymous || !first.User.IsVerified {
		t.Errorf("flags = anonymous:%v verified:%v, want false/true", first.User.IsAnonymous, first.User.IsVerified)
	}

	second, err := sm.Auth().LoginOAuth(ctx, req)
	if err != nil {
		t.Fatalf("second LoginOAuth: %v", err)
	}
	if second.User.UserID != first.User.UserID {
		t.Errorf("second login user = %q, want same as first %q", second.User.UserID, first.User.UserID)
	}
}

func TestLoginOAuthValidatesRequest(t *testing.T) {
	sm, _ := newTestManager(t)

	_, err := sm.Auth().LoginOAuth(context.Background(), OAuthLoginRequest{Provider: "google"})
	if err == nil {
		t.Error("expected validation error for missing oauthId")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	sm, _ := newTestManager(t)

	resp, err := sm.Auth().VerifyToken(context.Background(), "not-a-token")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if resp.Valid {
		t.Error("garbage token reported valid")
	}
}
