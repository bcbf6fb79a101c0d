package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhall-app/studyhall-service/internal/models"
)

type questionRepository struct {
	db *gorm.DB
}

func (r *questionRepository) Create(ctx context.Context, q *models.Question) error {
	row, err := questionToRow(q)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateError(err, "create question")
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, questionID string) (*models.Question, error) {
	var row questionRow
	if err := r.db.WithContext(ctx).First(&row, "question_id = ?", questionID).Error; err != nil {
		return nil, translateError(err, "get question by id")
	}
	return rowToQuestion(&row)
}

func (r *questionRepository) List(ctx context.Context, subject *models.Subject) ([]*models.Question, error) {
	query := r.db.WithContext(ctx).Model(&questionRow{})
	if subject != nil {
		query = query.Where("subject = ?", string(*subject))
	}

	var rows []questionRow
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "list questions")
	}

	questions := make([]*models.Question, len(rows))
	for i := range rows {
		q, err := rowToQuestion(&rows[i])
		if err != nil {
			return nil, err
		}
		questions[i] = q
	}
	return questions, nil
}

// AppendReply re-reads the reply list inside a transaction so concurrent
// appends don't overwrite each other.
func (r *questionRepository) AppendReply(ctx context.Context, questionID string, reply models.Reply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row questionRow
		err := tx.Clauses(lockForUpdate()).First(&row, "question_id = ?", questionID).Error
		if err != nil {
			return translateError(err, "get question for reply")
		}

		var replies []models.Reply
		if err := fromJSON(row.Replies, &replies); err != nil {
			return err
		}
		replies = append(replies, reply)

		col, err := toJSON(replies)
		if err != nil {
			return err
		}
		err = tx.Model(&questionRow{}).
			Where("question_id = ?", questionID).
			Update("replies", col).Error
		if err != nil {
			return translateError(err, "append reply")
		}
		return nil
	})
}
