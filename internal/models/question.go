package models

import "time"

type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectScience Subject = "science"
	SubjectHistory Subject = "history"
	SubjectEnglish Subject = "english"
	SubjectOther   Subject = "other"
)

const (
	MaxQuestionTitleLength   = 200
	MaxQuestionContentLength = 5000
)

// Reply is appended to a question and never edited or removed.
type Reply struct {
	UserID    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Question is a Q&A board entry with an ordered reply list.
type Question struct {
	QuestionID string    `json:"questionId" bson:"questionId"`
	UserID     string    `json:"userId" bson:"userId"`
	Username   string    `json:"username" bson:"username"`
	Title      string    `json:"title" bson:"title"`
	Content    string    `json:"content" bson:"content"`
	Subject    Subject   `json:"subject" bson:"subject"`
	Replies    []Reply   `json:"replies" bson:"replies"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// ValidSubject reports whether s is one of the known board subjects.
func ValidSubject(s Subject) bool {
	switch s {
	case SubjectMath, SubjectScience, SubjectHistory, SubjectEnglish, SubjectOther:
		return true
	}
	return false
}
