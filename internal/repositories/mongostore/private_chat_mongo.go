package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type privateChatRepository struct {
	col *mongo.Collection
}

func (r *privateChatRepository) Create(ctx context.Context, chat *models.PrivateChat) error {
	_, err := r.col.InsertOne(ctx, chat)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *privateChatRepository) GetByID(ctx context.Context, chatID string) (*models.PrivateChat, error) {
	var chat models.PrivateChat
	err := r.col.FindOne(ctx, bson.M{"chatId": chatID}).Decode(&chat)
	if err != nil {
		return nil, translateError(err)
	}
	return &chat, nil
}

func (r *privateChatRepository) GetByInviteCode(ctx context.Context, code string) (*models.PrivateChat, error) {
	var chat models.PrivateChat
	err := r.col.FindOne(ctx, bson.M{"inviteCode": code}).Decode(&chat)
	if err != nil {
		return nil, translateError(err)
	}
	return &chat, nil
}

func (r *privateChatRepository) ListByMember(ctx context.Context, userID string) ([]*models.PrivateChat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"members.userId": userID}, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var chats []*models.PrivateChat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, translateError(err)
	}
	return chats, nil
}

// AddPendingInvite filters on the document state so a member or an already
// pending user never gets a second entry; a no-op match is not an error.
func (r *privateChatRepository) AddPendingInvite(ctx context.Context, chatID string, invite models.PendingInvite) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"chatId":                chatID,
			"members.userId":        bson.M{"$ne": invite.UserID},
			"pendingInvites.userId": bson.M{"$ne": invite.UserID},
		},
		bson.M{"$push": bson.M{"pendingInvites": invite}})
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		// distinguish "chat missing" from "already member/pending"
		if _, err := r.GetByID(ctx, chatID); err != nil {
			return err
		}
	}
	return nil
}

// AcceptInvite runs $pull and $push in one document update, so the move from
// pendingInvites to members has no observable intermediate state.
func (r *privateChatRepository) AcceptInvite(ctx context.Context, chatID, userID, username string, joinedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"chatId": chatID, "pendingInvites.userId": userID},
		bson.M{
			"$pull": bson.M{"pendingInvites": bson.M{"userId": userID}},
			"$push": bson.M{"members": models.ChatMember{
				UserID:   userID,
				Username: username,
				JoinedAt: joinedAt,
			}},
		})
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, chatID); err != nil {
			return err
		}
		return repositories.ErrNoPendingInvite
	}
	return nil
}

func (r *privateChatRepository) RejectInvite(ctx context.Context, chatID, userID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"chatId": chatID, "pendingInvites.userId": userID},
		bson.M{"$pull": bson.M{"pendingInvites": bson.M{"userId": userID}}})
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, chatID); err != nil {
			return err
		}
		return repositories.ErrNoPendingInvite
	}
	return nil
}
