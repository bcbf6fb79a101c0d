package gormstore

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/studyhall-app/studyhall-service/internal/models"
)

// Row types keep storage concerns out of the domain models. List-valued
// fields (members, replies, exam questions, ...) are stored as JSON columns
// so the consent transition stays a single-row update.

type userRow struct {
	UserID        string         `gorm:"primaryKey;size:255"`
	Username      string         `gorm:"not null;size:100"`
	Email         *string        `gorm:"size:255"`
	IsVerified    bool           `gorm:"not null;default:false"`
	IsAnonymous   bool           `gorm:"not null;default:false"`
	GradeLevel    *int           `gorm:"index"`
	Bio           string         `gorm:"type:text"`
	Interests     datatypes.JSON `gorm:"type:json"`
	Subjects      datatypes.JSON `gorm:"type:json"`
	OAuthProvider *string        `gorm:"size:50;index:idx_users_oauth"`
	OAuthID       *string        `gorm:"size:255;index:idx_users_oauth"`
	CreatedAt     time.Time
	LastActive    time.Time
}

func (userRow) TableName() string { return "users" }

type messageRow struct {
	MessageID string  `gorm:"primaryKey;size:64"`
	UserID    string  `gorm:"not null;size:255;index"`
	Username  string  `gorm:"not null;size:100"`
	Content   string  `gorm:"not null;type:text"`
	Type      string  `gorm:"not null;size:16;index"`
	ChatID    *string `gorm:"size:64;index"`
	CreatedAt time.Time
}

func (messageRow) TableName() string { return "messages" }

type questionRow struct {
	QuestionID string         `gorm:"primaryKey;size:64"`
	UserID     string         `gorm:"not null;size:255;index"`
	Username   string         `gorm:"not null;size:100"`
	Title      string         `gorm:"not null;size:200"`
	Content    string         `gorm:"not null;type:text"`
	Subject    string         `gorm:"not null;size:16;index"`
	Replies    datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time
}

func (questionRow) TableName() string { return "questions" }

type privateChatRow struct {
	ChatID         string         `gorm:"primaryKey;size:64"`
	Name           string         `gorm:"not null;size:100"`
	CreatorID      string         `gorm:"not null;size:255;index"`
	InviteCode     string         `gorm:"not null;size:10;uniqueIndex"`
	Members        datatypes.JSON `gorm:"type:json"`
	PendingInvites datatypes.JSON `gorm:"type:json"`
	CreatedAt      time.Time
}

func (privateChatRow) TableName() string { return "private_chats" }

type examRow struct {
	ExamID      string         `gorm:"primaryKey;size:64"`
	Title       string         `gorm:"not null;size:200"`
	Subject     string         `gorm:"not null;size:16;index"`
	GradeLevel  int            `gorm:"not null;index"`
	Duration    int            `gorm:"not null"`
	Questions   datatypes.JSON `gorm:"type:json"`
	TotalPoints int            `gorm:"not null"`
	CreatedAt   time.Time
}

func (examRow) TableName() string { return "exams" }

type submissionRow struct {
	SubmissionID string         `gorm:"primaryKey;size:64"`
	ExamID       string         `gorm:"not null;size:64;index:idx_submissions_exam_user"`
	UserID       string         `gorm:"not null;size:255;index:idx_submissions_exam_user"`
	Answers      datatypes.JSON `gorm:"type:json"`
	Score        int            `gorm:"not null"`
	TotalPoints  int            `gorm:"not null"`
	Percentage   float64        `gorm:"not null"`
	SubmittedAt  time.Time
}

func (submissionRow) TableName() string { return "submissions" }

// ===== JSON COLUMN CODECS =====

func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	return datatypes.JSON(b), nil
}

func fromJSON(col datatypes.JSON, dest any) error {
	if len(col) == 0 {
		return nil
	}
	if err := json.Unmarshal(col, dest); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}

// ===== ROW <-> MODEL MAPPING =====

func userToRow(u *models.User) (*userRow, error) {
	interests, err := toJSON(u.Interests)
	if err != nil {
		return nil, err
	}
	subjects, err := toJSON(u.Subjects)
	if err != nil {
		return nil, err
	}
	return &userRow{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		IsVerified:    u.IsVerified,
		IsAnonymous:   u.IsAnonymous,
		GradeLevel:    u.GradeLevel,
		Bio:           u.Bio,
		Interests:     interests,
		Subjects:      subjects,
		OAuthProvider: u.OAuthProvider,
		OAuthID:       u.OAuthID,
		CreatedAt:     u.CreatedAt,
		LastActive:    u.LastActive,
	}, nil
}

func rowToUser(r *userRow) (*models.User, error) {
	u := &models.User{
		UserID:        r.UserID,
		Username:      r.Username,
		Email:         r.Email,
		IsVerified:    r.IsVerified,
		IsAnonymous:   r.IsAnonymous,
		GradeLevel:    r.GradeLevel,
		Bio:           r.Bio,
		OAuthProvider: r.OAuthProvider,
		OAuthID:       r.OAuthID,
		CreatedAt:     r.CreatedAt,
		LastActive:    r.LastActive,
	}
	if err := fromJSON(r.Interests, &u.Interests); err != nil {
		return nil, err
	}
	if err := fromJSON(r.Subjects, &u.Subjects); err != nil {
		return nil, err
	}
	return u, nil
}

func messageToRow(m *models.Message) *messageRow {
	return &messageRow{
		MessageID: m.MessageID,
		UserID:    m.UserID,
		Username:  m.Username,
		Content:   m.Content,
		Type:      string(m.Type),
		ChatID:    m.ChatID,
		CreatedAt: m.CreatedAt,
	}
}

func rowToMessage(r *messageRow) *models.Message {
	return &models.Message{
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Username:  r.Username,
		Content:   r.Content,
		Type:      models.MessageType(r.Type),
		ChatID:    r.ChatID,
		CreatedAt: r.CreatedAt,
	}
}

func questionToRow(q *models.Question) (*questionRow, error) {
	replies, err := toJSON(q.Replies)
	if err != nil {
		return nil, err
	}
	return &questionRow{
		QuestionID: q.QuestionID,
		UserID:     q.UserID,
		Username:   q.Username,
		Title:      q.Title,
		Content:    q.Content,
		Subject:    string(q.Subject),
		Replies:    replies,
		CreatedAt:  q.CreatedAt,
	}, nil
}

func rowToQuestion(r *questionRow) (*models.Question, error) {
	q := &models.Question{
		QuestionID: r.QuestionID,
		UserID:     r.UserID,
		Username:   r.Username,
		Title:      r.Title,
		Content:    r.Content,
		Subject:    models.Subject(r.Subject),
		Replies:    []models.Reply{},
		CreatedAt:  r.CreatedAt,
	}
	if err := fromJSON(r.Replies, &q.Replies); err != nil {
		return nil, err
	}
	return q, nil
}

func chatToRow(c *models.PrivateChat) (*privateChatRow, error) {
	members, err := toJSON(c.Members)
	if err != nil {
		return nil, err
	}
	pending, err := toJSON(c.PendingInvites)
	if err != nil {
		return nil, err
	}
	return &privateChatRow{
		ChatID:         c.ChatID,
		Name:           c.Name,
		CreatorID:      c.CreatorID,
		InviteCode:     c.InviteCode,
		Members:        members,
		PendingInvites: pending,
		CreatedAt:      c.CreatedAt,
	}, nil
}

func rowToChat(r *privateChatRow) (*models.PrivateChat, error) {
	c := &models.PrivateChat{
		ChatID:         r.ChatID,
		Name:           r.Name,
		CreatorID:      r.CreatorID,
		InviteCode:     r.InviteCode,
		Members:        []models.ChatMember{},
		PendingInvites: []models.PendingInvite{},
		CreatedAt:      r.CreatedAt,
	}
	if err := fromJSON(r.Members, &c.Members); err != nil {
		return nil, err
	}
	if err := fromJSON(r.PendingInvites, &c.PendingInvites); err != nil {
		return nil, err
	}
	return c, nil
}

func examToRow(e *models.Exam) (*examRow, error) {
	questions, err := toJSON(e.Questions)
	if err != nil {
		return nil, err
	}
	return &examRow{
		ExamID:      e.ExamID,
		Title:       e.Title,
		Subject:     string(e.Subject),
		GradeLevel:  e.GradeLevel,
		Duration:    e.Duration,
		Questions:   questions,
		TotalPoints: e.TotalPoints,
		CreatedAt:   e.CreatedAt,
	}, nil
}

func rowToExam(r *examRow) (*models.Exam, error) {
	e := &models.Exam{
		ExamID:      r.ExamID,
		Title:       r.Title,
		Subject:     models.Subject(r.Subject),
		GradeLevel:  r.GradeLevel,
		Duration:    r.Duration,
		Questions:   []models.ExamQuestion{},
		TotalPoints: r.TotalPoints,
		CreatedAt:   r.CreatedAt,
	}
	if err := fromJSON(r.Questions, &e.Questions); err != nil {
		return nil, err
	}
	return e, nil
}

func submissionToRow(s *models.Submission) (*submissionRow, error) {
	answers, err := toJSON(s.Answers)
	if err != nil {
		return nil, err
	}
	return &submissionRow{
		SubmissionID: s.SubmissionID,
		ExamID:       s.ExamID,
		UserID:       s.UserID,
		Answers:      answers,
		Score:        s.Score,
		TotalPoints:  s.TotalPoints,
		Percentage:   s.Percentage,
		SubmittedAt:  s.SubmittedAt,
	}, nil
}

func rowToSubmission(r *submissionRow) (*models.Submission, error) {
	s := &models.Submission{
		SubmissionID: r.SubmissionID,
		ExamID:       r.ExamID,
		UserID:       r.UserID,
		Answers:      []int{},
		Score:        r.Score,
		TotalPoints:  r.TotalPoints,
		Percentage:   r.Percentage,
		SubmittedAt:  r.SubmittedAt,
	}
	if err := fromJSON(r.Answers, &s.Answers); err != nil {
		return nil, err
	}
	return s, nil
}
