package repositories

import "errors"

var (
	// ErrNotFound is returned by every repository on a lookup miss.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateInviteCode is returned when an invite code is already taken
	// by another chat.
	ErrDuplicateInviteCode = errors.New("invite code already in use")

	// ErrNoPendingInvite is returned by consent transitions when the user has
	// no unresolved invite on the chat.
	ErrNoPendingInvite = errors.New("no pending invite for user")
)

// IsNotFoundError reports whether err is a repository lookup miss.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
