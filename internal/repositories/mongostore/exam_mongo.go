package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type examRepository struct {
	exams       *mongo.Collection
	submissions *mongo.Collection
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	_, err := r.exams.InsertOne(ctx, exam)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *examRepository) GetByID(ctx context.Context, examID string) (*models.Exam, error) {
	var exam models.Exam
	err := r.exams.FindOne(ctx, bson.M{"examId": examID}).Decode(&exam)
	if err != nil {
		return nil, translateError(err)
	}
	return &exam, nil
}

func (r *examRepository) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.Exam, error) {
	filter := bson.M{}
	if filters.GradeLevel != nil {
		filter["gradeLevel"] = *filters.GradeLevel
	}
	if filters.Subject != nil {
		filter["subject"] = string(*filters.Subject)
	}

	opts := options.Find().SetSort(bson.D{{Key: "examId", Value: 1}})
	cursor, err := r.exams.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var exams []*models.Exam
	if err := cursor.All(ctx, &exams); err != nil {
		return nil, translateError(err)
	}
	return exams, nil
}

func (r *examRepository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	_, err := r.submissions.InsertOne(ctx, sub)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *examRepository) GetSubmission(ctx context.Context, examID, userID string) (*models.Submission, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	var sub models.Submission
	err := r.submissions.FindOne(ctx, bson.M{"examId": examID, "userId": userID}, opts).Decode(&sub)
	if err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}
