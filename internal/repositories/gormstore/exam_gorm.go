package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type examRepository struct {
	db *gorm.DB
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	row, err := examToRow(exam)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateError(err, "create exam")
	}
	return nil
}

func (r *examRepository) GetByID(ctx context.Context, examID string) (*models.Exam, error) {
	var row examRow
	if err := r.db.WithContext(ctx).First(&row, "exam_id = ?", examID).Error; err != nil {
		return nil, translateError(err, "get exam by id")
	}
	return rowToExam(&row)
}

func (r *examRepository) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.Exam, error) {
	query := r.db.WithContext(ctx).Model(&examRow{})
	if filters.GradeLevel != nil {
		query = query.Where("grade_level = ?", *filters.GradeLevel)
	}
	if filters.Subject != nil {
		query = query.Where("subject = ?", string(*filters.Subject))
	}

	var rows []examRow
	if err := query.Order("exam_id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "list exams")
	}

	exams := make([]*models.Exam, len(rows))
	for i := range rows {
		exam, err := rowToExam(&rows[i])
		if err != nil {
			return nil, err
		}
		exams[i] = exam
	}
	return exams, nil
}

func (r *examRepository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	row, err := submissionToRow(sub)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateError(err, "create submission")
	}
	return nil
}

func (r *examRepository) GetSubmission(ctx context.Context, examID, userID string) (*models.Submission, error) {
	var row submissionRow
	err := r.db.WithContext(ctx).
		Where("exam_id = ? AND user_id = ?", examID, userID).
		Order("submitted_at DESC").
		First(&row).Error
	if err != nil {
		return nil, translateError(err, "get submission")
	}
	return rowToSubmission(&row)
}
