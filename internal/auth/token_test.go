package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("anon_123", "Anonymous_42", true, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != "anon_123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "anon_123")
	}
	if claims.Username != "Anonymous_42" {
		t.Errorf("Username = %q, want %q", claims.Username, "Anonymous_42")
	}
	if !claims.IsAnonymous || claims.IsVerified {
		t.Errorf("flags = (anonymous=%v, verified=%v), want (true, false)", claims.IsAnonymous, claims.IsVerified)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.Parse(tt.token); err == nil {
				t.Error("Parse() accepted invalid token")
			}
		})
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("u1", "user", false, true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Error("Parse() accepted token signed with a different secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := NewTokenManager("test-secret", -time.Minute).Issue("u1", "user", false, true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := NewTokenManager("test-secret", time.Hour).Parse(token); err == nil {
		t.Error("Parse() accepted expired token")
	}
}
