package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type questionRepository struct {
	col *mongo.Collection
}

func (r *questionRepository) Create(ctx context.Context, q *models.Question) error {
	_, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, questionID string) (*models.Question, error) {
	var q models.Question
	err := r.col.FindOne(ctx, bson.M{"questionId": questionID}).Decode(&q)
	if err != nil {
		return nil, translateError(err)
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, subject *models.Subject) ([]*models.Question, error) {
	filter := bson.M{}
	if subject != nil {
		filter["subject"] = string(*subject)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var questions []*models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, translateError(err)
	}
	return questions, nil
}

func (r *questionRepository) AppendReply(ctx context.Context, questionID string, reply models.Reply) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"questionId": questionID},
		bson.M{"$push": bson.M{"replies": reply}})
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
