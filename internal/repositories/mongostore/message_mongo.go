package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall-app/studyhall-service/internal/models"
)

type messageRepository struct {
	col *mongo.Collection
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	_, err := r.col.InsertOne(ctx, msg)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *messageRepository) ListGlobal(ctx context.Context) ([]*models.Message, error) {
	return r.list(ctx, bson.M{"type": string(models.MessageGlobal)})
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID string) ([]*models.Message, error) {
	return r.list(ctx, bson.M{"type": string(models.MessagePrivate), "chatId": chatID})
}

func (r *messageRepository) list(ctx context.Context, filter bson.M) ([]*models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(models.MessageHistoryLimit)

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, translateError(err)
	}
	return messages, nil
}
