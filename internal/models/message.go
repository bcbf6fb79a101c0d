package models

import "time"

type MessageType string

const (
	MessageGlobal   MessageType = "global"
	MessagePrivate  MessageType = "private"
	MessageQuestion MessageType = "question"
)

const (
	// MaxMessageContentLength bounds a single chat message.
	MaxMessageContentLength = 2000

	// MessageHistoryLimit caps every message retrieval, newest first.
	MessageHistoryLimit = 100
)

// Message is immutable once created. ChatID is set only for private messages.
type Message struct {
	MessageID string      `json:"messageId" bson:"messageId"`
	UserID    string      `json:"userId" bson:"userId"`
	Username  string      `json:"username" bson:"username"`
	Content   string      `json:"content" bson:"content"`
	Type      MessageType `json:"type" bson:"type"`
	ChatID    *string     `json:"chatId,omitempty" bson:"chatId,omitempty"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}
