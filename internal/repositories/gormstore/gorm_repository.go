// Package gormstore implements the repository interfaces on a relational
// database through GORM. The same code serves PostgreSQL and MySQL; the
// driver is chosen at startup from configuration.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

// Repository implements repositories.Repository on *gorm.DB.
type Repository struct {
	db *gorm.DB

	user        repositories.UserRepository
	message     repositories.MessageRepository
	question    repositories.QuestionRepository
	privateChat repositories.PrivateChatRepository
	exam        repositories.ExamRepository
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(
		&userRow{},
		&messageRow{},
		&questionRow{},
		&privateChatRow{},
		&examRow{},
		&submissionRow{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Repository{
		db:          db,
		user:        &userRepository{db: db},
		message:     &messageRepository{db: db},
		question:    &questionRepository{db: db},
		privateChat: &privateChatRepository{db: db},
		exam:        &examRepository{db: db},
	}, nil
}

func (r *Repository) User() repositories.UserRepository               { return r.user }
func (r *Repository) Message() repositories.MessageRepository         { return r.message }
func (r *Repository) Question() repositories.QuestionRepository       { return r.question }
func (r *Repository) PrivateChat() repositories.PrivateChatRepository { return r.privateChat }
func (r *Repository) Exam() repositories.ExamRepository               { return r.exam }

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// lockForUpdate takes a row lock for the read-modify-write transitions on
// JSON list columns. Supported by both PostgreSQL and MySQL.
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// translateError maps gorm errors onto the repository error taxonomy.
func translateError(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
