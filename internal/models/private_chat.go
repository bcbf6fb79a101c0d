package models

import "time"

const (
	MaxChatNameLength = 100

	// InviteCodeLength is the number of characters in a chat invite code.
	InviteCodeLength = 6
)

// ChatMember is a user who accepted an invite (or the creator).
type ChatMember struct {
	UserID   string    `json:"userId" bson:"userId"`
	Username string    `json:"username" bson:"username"`
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`
}

// PendingInvite is a user awaiting consent. A userId is never in both the
// member list and the pending list of the same chat.
type PendingInvite struct {
	UserID    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	InvitedAt time.Time `json:"invitedAt" bson:"invitedAt"`
}

// PrivateChat is an invite-gated group chat. The creator is always the first
// member. Membership changes only through the invite/consent transitions.
type PrivateChat struct {
	ChatID         string          `json:"chatId" bson:"chatId"`
	Name           string          `json:"name" bson:"name"`
	CreatorID      string          `json:"creatorId" bson:"creatorId"`
	InviteCode     string          `json:"inviteCode" bson:"inviteCode"`
	Members        []ChatMember    `json:"members" bson:"members"`
	PendingInvites []PendingInvite `json:"pendingInvites" bson:"pendingInvites"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
}

// IsMember reports whether userID accepted into the chat.
func (c *PrivateChat) IsMember(userID string) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsPending reports whether userID has an unresolved invite.
func (c *PrivateChat) IsPending(userID string) bool {
	for _, p := range c.PendingInvites {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
