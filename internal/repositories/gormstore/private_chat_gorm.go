package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type privateChatRepository struct {
	db *gorm.DB
}

func (r *privateChatRepository) Create(ctx context.Context, chat *models.PrivateChat) error {
	row, err := chatToRow(chat)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrDuplicateInviteCode
		}
		return translateError(err, "create private chat")
	}
	return nil
}

func (r *privateChatRepository) GetByID(ctx context.Context, chatID string) (*models.PrivateChat, error) {
	var row privateChatRow
	if err := r.db.WithContext(ctx).First(&row, "chat_id = ?", chatID).Error; err != nil {
		return nil, translateError(err, "get private chat by id")
	}
	return rowToChat(&row)
}

func (r *privateChatRepository) GetByInviteCode(ctx context.Context, code string) (*models.PrivateChat, error) {
	var row privateChatRow
	if err := r.db.WithContext(ctx).First(&row, "invite_code = ?", code).Error; err != nil {
		return nil, translateError(err, "get private chat by invite code")
	}
	return rowToChat(&row)
}

// ListByMember filters on the JSON member column after the read; member lists
// are small and this keeps one query shape for both drivers.
func (r *privateChatRepository) ListByMember(ctx context.Context, userID string) ([]*models.PrivateChat, error) {
	var rows []privateChatRow
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, translateError(err, "list private chats")
	}

	var chats []*models.PrivateChat
	for i := range rows {
		chat, err := rowToChat(&rows[i])
		if err != nil {
			return nil, err
		}
		if chat.IsMember(userID) {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (r *privateChatRepository) AddPendingInvite(ctx context.Context, chatID string, invite models.PendingInvite) error {
	return r.mutate(ctx, chatID, func(chat *models.PrivateChat) error {
		if chat.IsMember(invite.UserID) || chat.IsPending(invite.UserID) {
			return nil
		}
		chat.PendingInvites = append(chat.PendingInvites, invite)
		return nil
	})
}

func (r *privateChatRepository) AcceptInvite(ctx context.Context, chatID, userID, username string, joinedAt time.Time) error {
	return r.mutate(ctx, chatID, func(chat *models.PrivateChat) error {
		if !dropPending(chat, userID) {
			return repositories.ErrNoPendingInvite
		}
		chat.Members = append(chat.Members, models.ChatMember{
			UserID:   userID,
			Username: username,
			JoinedAt: joinedAt,
		})
		return nil
	})
}

func (r *privateChatRepository) RejectInvite(ctx context.Context, chatID, userID string) error {
	return r.mutate(ctx, chatID, func(chat *models.PrivateChat) error {
		if !dropPending(chat, userID) {
			return repositories.ErrNoPendingInvite
		}
		return nil
	})
}

// mutate applies fn to the chat's membership state under a row lock so the
// pending -> member move commits as one transition.
func (r *privateChatRepository) mutate(ctx context.Context, chatID string, fn func(*models.PrivateChat) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row privateChatRow
		err := tx.Clauses(lockForUpdate()).First(&row, "chat_id = ?", chatID).Error
		if err != nil {
			return translateError(err, "get private chat for update")
		}

		chat, err := rowToChat(&row)
		if err != nil {
			return err
		}
		if err := fn(chat); err != nil {
			return err
		}

		members, err := toJSON(chat.Members)
		if err != nil {
			return err
		}
		pending, err := toJSON(chat.PendingInvites)
		if err != nil {
			return err
		}
		err = tx.Model(&privateChatRow{}).
			Where("chat_id = ?", chatID).
			Updates(map[string]any{
				"members":         members,
				"pending_invites": pending,
			}).Error
		if err != nil {
			return translateError(err, "update private chat membership")
		}
		return nil
	})
}

func dropPending(chat *models.PrivateChat, userID string) bool {
	for i, p := range chat.PendingInvites {
		if p.UserID == userID {
			chat.PendingInvites = append(chat.PendingInvites[:i], chat.PendingInvites[i+1:]...)
			return true
		}
	}
	return false
}

// isUniqueViolation matches the duplicate-key errors of both drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
