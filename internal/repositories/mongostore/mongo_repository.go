// Package mongostore implements the repository interfaces on MongoDB.
// Membership transitions use single-document $push/$pull updates so the
// pending -> member move is atomic at the document level.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

const (
	usersCollection       = "users"
	messagesCollection    = "messages"
	questionsCollection   = "questions"
	chatsCollection       = "private_chats"
	examsCollection       = "exams"
	submissionsCollection = "submissions"
)

// Repository implements repositories.Repository on a mongo database.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database

	user        repositories.UserRepository
	message     repositories.MessageRepository
	question    repositories.QuestionRepository
	privateChat repositories.PrivateChatRepository
	exam        repositories.ExamRepository
}

// Open connects, pings, and prepares indexes. It fails fast so the caller can
// fall back to the in-memory store.
func Open(ctx context.Context, uri, database string) (*Repository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(database)
	repo := &Repository{
		client:      client,
		db:          db,
		user:        &userRepository{col: db.Collection(usersCollection)},
		message:     &messageRepository{col: db.Collection(messagesCollection)},
		question:    &questionRepository{col: db.Collection(questionsCollection)},
		privateChat: &privateChatRepository{col: db.Collection(chatsCollection)},
		exam: &examRepository{
			exams:       db.Collection(examsCollection),
			submissions: db.Collection(submissionsCollection),
		},
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return repo, nil
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	// invite codes must be globally unique; the unique index backs the
	// regenerate-on-collision loop at chat creation
	_, err := r.db.Collection(chatsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "inviteCode", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.db.Collection(messagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}, {Key: "chatId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *Repository) User() repositories.UserRepository               { return r.user }
func (r *Repository) Message() repositories.MessageRepository         { return r.message }
func (r *Repository) Question() repositories.QuestionRepository       { return r.question }
func (r *Repository) PrivateChat() repositories.PrivateChatRepository { return r.privateChat }
func (r *Repository) Exam() repositories.ExamRepository               { return r.exam }

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// translateError maps driver errors onto the repository error taxonomy.
func translateError(err error) error {
	if err == mongo.ErrNoDocuments {
		return repositories.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicateInviteCode
	}
	return err
}
