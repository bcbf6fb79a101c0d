package models

import "time"

// ExamQuestion is a multiple-choice question inside an exam definition.
// CorrectAnswer is an index into Options and is stripped from read APIs.
type ExamQuestion struct {
	QuestionText  string   `json:"questionText" bson:"questionText"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer int      `json:"correctAnswer" bson:"correctAnswer"`
	Points        int      `json:"points" bson:"points"`
}

// Exam is read-only to end users.
type Exam struct {
	ExamID      string         `json:"examId" bson:"examId"`
	Title       string         `json:"title" bson:"title"`
	Subject     Subject        `json:"subject" bson:"subject"`
	GradeLevel  int            `json:"gradeLevel" bson:"gradeLevel"`
	Duration    int            `json:"duration" bson:"duration"` // minutes
	Questions   []ExamQuestion `json:"questions" bson:"questions"`
	TotalPoints int            `json:"totalPoints" bson:"totalPoints"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
}

// Submission is an append-only graded exam attempt.
type Submission struct {
	SubmissionID string    `json:"submissionId" bson:"submissionId"`
	ExamID       string    `json:"examId" bson:"examId"`
	UserID       string    `json:"userId" bson:"userId"`
	Answers      []int     `json:"answers" bson:"answers"`
	Score        int       `json:"score" bson:"score"`
	TotalPoints  int       `json:"totalPoints" bson:"totalPoints"`
	Percentage   float64   `json:"percentage" bson:"percentage"`
	SubmittedAt  time.Time `json:"submittedAt" bson:"submittedAt"`
}

// ExamSummary is the list-view projection: no questions at all.
type ExamSummary struct {
	ExamID        string    `json:"examId"`
	Title         string    `json:"title"`
	Subject       Subject   `json:"subject"`
	GradeLevel    int       `json:"gradeLevel"`
	Duration      int       `json:"duration"`
	TotalPoints   int       `json:"totalPoints"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SanitizedQuestion is an exam question with the correct answer withheld.
type SanitizedQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
	Points       int      `json:"points"`
}

// SanitizedExam is the detail-view projection safe to send to a student.
type SanitizedExam struct {
	ExamID      string              `json:"examId"`
	Title       string              `json:"title"`
	Subject     Subject             `json:"subject"`
	GradeLevel  int                 `json:"gradeLevel"`
	Duration    int                 `json:"duration"`
	TotalPoints int                 `json:"totalPoints"`
	Questions   []SanitizedQuestion `json:"questions"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Summary projects the exam for list responses.
func (e *Exam) Summary() *ExamSummary {
	return &ExamSummary{
		ExamID:        e.ExamID,
		Title:         e.Title,
		Subject:       e.Subject,
		GradeLevel:    e.GradeLevel,
		Duration:      e.Duration,
		TotalPoints:   e.TotalPoints,
		QuestionCount: len(e.Questions),
		CreatedAt:     e.CreatedAt,
	}
}

// Sanitized projects the exam with correct answers withheld.
func (e *Exam) Sanitized() *SanitizedExam {
	questions := make([]SanitizedQuestion, len(e.Questions))
	for i, q := range e.Questions {
		questions[i] = SanitizedQuestion{
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Points:       q.Points,
		}
	}
	return &SanitizedExam{
		ExamID:      e.ExamID,
		Title:       e.Title,
		Subject:     e.Subject,
		GradeLevel:  e.GradeLevel,
		Duration:    e.Duration,
		TotalPoints: e.TotalPoints,
		Questions:   questions,
		CreatedAt:   e.CreatedAt,
	}
}
