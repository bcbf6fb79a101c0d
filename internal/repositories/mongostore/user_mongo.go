package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type userRepository struct {
	col *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByOAuth(ctx context.Context, provider, oauthID string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"oauthProvider": provider, "oauthId": oauthID}).Decode(&user)
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update repositories.ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.GradeLevel != nil {
		set["gradeLevel"] = *update.GradeLevel
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Interests != nil {
		set["interests"] = update.Interests
	}
	if update.Subjects != nil {
		set["subjects"] = update.Subjects
	}

	if len(set) > 0 {
		res, err := r.col.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
		if err != nil {
			return nil, translateError(err)
		}
		if res.MatchedCount == 0 {
			return nil, repositories.ErrNotFound
		}
	}
	return r.GetByID(ctx, userID)
}

func (r *userRepository) TouchLastActive(ctx context.Context, userID string, at time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"lastActive": at}})
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *userRepository) Search(ctx context.Context, filters repositories.StudentFilters) ([]*models.User, error) {
	filter := bson.M{"userId": bson.M{"$ne": filters.ExcludeUserID}}
	if filters.GradeLevel != nil {
		filter["gradeLevel"] = *filters.GradeLevel
	}
	if filters.Subject != nil {
		filter["subjects"] = *filters.Subject
	}
	if filters.Query != nil {
		pattern := primitive.Regex{Pattern: *filters.Query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"username": pattern},
			bson.M{"bio": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "userId", Value: 1}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit))
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translateError(err)
	}
	return users, nil
}
