package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhall-app/studyhall-service/internal/models"
)

type messageRepository struct {
	db *gorm.DB
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(messageToRow(msg)).Error; err != nil {
		return translateError(err, "create message")
	}
	return nil
}

func (r *messageRepository) ListGlobal(ctx context.Context) ([]*models.Message, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("type = ?", string(models.MessageGlobal)))
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID string) ([]*models.Message, error) {
	return r.list(ctx, r.db.WithContext(ctx).
		Where("type = ? AND chat_id = ?", string(models.MessagePrivate), chatID))
}

func (r *messageRepository) list(ctx context.Context, query *gorm.DB) ([]*models.Message, error) {
	var rows []messageRow
	err := query.Order("created_at DESC").
		Limit(models.MessageHistoryLimit).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list messages")
	}

	messages := make([]*models.Message, len(rows))
	for i := range rows {
		messages[i] = rowToMessage(&rows[i])
	}
	return messages, nil
}
