package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrChatNotFound     = errors.New("chat not found")
	ErrExamNotFound     = errors.New("exam not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrVerifiedRequired   = errors.New("verified account required")

	ErrNotMember       = errors.New("not a member of this chat")
	ErrAlreadyMember   = errors.New("already a member of this chat")
	ErrAlreadyPending  = errors.New("invite already pending")
	ErrNoPendingInvite = errors.New("no pending invite for this user")

	ErrGradeLevelMismatch = errors.New("exam is not available for your grade level")

	ErrInviteCodeExhausted = errors.New("could not allocate a unique invite code")
)

// ValidationError is a single business rule violation, distinct from the
// struct tag validation done by the validator package.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrChatNotFound) ||
		errors.Is(err, ErrExamNotFound)
}
