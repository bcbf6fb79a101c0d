package validator

import (
	"strings"
	"testing"
)

func TestValidateSendMessage(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr bool
	}{
		{name: "ok", req: SendMessageRequest{Content: "hello"}},
		{name: "empty content", req: SendMessageRequest{Content: ""}, wantErr: true},
		{name: "too long", req: SendMessageRequest{Content: strings.Repeat("x", 2001)}, wantErr: true},
		{name: "at limit", req: SendMessageRequest{Content: strings.Repeat("x", 2000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateCreateQuestion(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     CreateQuestionRequest
		wantErr bool
	}{
		{name: "ok", req: CreateQuestionRequest{Title: "t", Content: "c", Subject: "math"}},
		{name: "subject optional", req: CreateQuestionRequest{Title: "t", Content: "c"}},
		{name: "bad subject", req: CreateQuestionRequest{Title: "t", Content: "c", Subject: "chemistry"}, wantErr: true},
		{name: "title too long", req: CreateQuestionRequest{Title: strings.Repeat("x", 201), Content: "c"}, wantErr: true},
		{name: "content too long", req: CreateQuestionRequest{Title: "t", Content: strings.Repeat("x", 5001)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateUpdateProfileGradeBounds(t *testing.T) {
	v := New()

	for _, grade := range []int{0, 13} {
		req := UpdateProfileRequest{GradeLevel: &grade}
		if errs := v.Validate(&req); errs == nil {
			t.Errorf("Validate() accepted grade level %d", grade)
		}
	}
	grade := 7
	if errs := v.Validate(&UpdateProfileRequest{GradeLevel: &grade}); errs != nil {
		t.Errorf("Validate() rejected valid grade: %v", errs)
	}
}

func TestFieldErrorsAreReported(t *testing.T) {
	v := New()

	errs := v.Validate(&CreateChatRequest{})
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Field != "name" {
		t.Errorf("Field = %q, want %q", errs[0].Field, "name")
	}
}
