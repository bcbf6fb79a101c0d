package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

// ExamImporter seeds exam definitions from an .xlsx workbook. Each data row
// is one question; consecutive rows sharing a title form one exam. Columns:
//
//	A title | B subject | C grade | D duration | E question text |
//	F options (pipe separated) | G correct answer index | H points
type ExamImporter struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExamImporter(repo repositories.Repository, logger *slog.Logger) *ExamImporter {
	return &ExamImporter{repo: repo, logger: logger}
}

// ImportFile loads every exam in the workbook. Returns the number of exams
// created.
func (im *ExamImporter) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return 0, nil
	}

	var (
		current  *models.Exam
		imported int
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := im.repo.Exam().Create(ctx, current); err != nil {
			return fmt.Errorf("store exam %q: %w", current.Title, err)
		}
		im.logger.Info("exam imported",
			"exam_id", current.ExamID, "title", current.Title, "questions", len(current.Questions))
		imported++
		current = nil
		return nil
	}

	// Row 0 is the header.
	for i, row := range rows[1:] {
		if len(row) < 8 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		title := strings.TrimSpace(row[0])
		if current == nil || current.Title != title {
			if err := flush(); err != nil {
				return imported, err
			}
			exam, err := examFromRow(title, row)
			if err != nil {
				return imported, fmt.Errorf("row %d: %w", i+2, err)
			}
			current = exam
		}

		q, err := questionFromRow(row)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", i+2, err)
		}
		current.Questions = append(current.Questions, q)
		current.TotalPoints += q.Points
	}
	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

func examFromRow(title string, row []string) (*models.Exam, error) {
	subject := models.Subject(strings.ToLower(strings.TrimSpace(row[1])))
	if !models.ValidSubject(subject) {
		return nil, fmt.Errorf("unknown subject %q", row[1])
	}
	grade, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil || grade < 1 || grade > 12 {
		return nil, fmt.Errorf("bad grade level %q", row[2])
	}
	duration, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("bad duration %q", row[3])
	}
	return &models.Exam{
		ExamID:     uuid.NewString(),
		Title:      title,
		Subject:    subject,
		GradeLevel: grade,
		Duration:   duration,
		CreatedAt:  time.Now(),
	}, nil
}

func questionFromRow(row []string) (models.ExamQuestion, error) {
	options := strings.Split(row[5], "|")
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}
	if len(options) < 2 {
		return models.ExamQuestion{}, fmt.Errorf("need at least 2 options, got %q", row[5])
	}

	correct, err := strconv.Atoi(strings.TrimSpace(row[6]))
	if err != nil || correct < 0 || correct >= len(options) {
		return models.ExamQuestion{}, fmt.Errorf("bad correct answer index %q", row[6])
	}
	points, err := strconv.Atoi(strings.TrimSpace(row[7]))
	if err != nil || points <= 0 {
		return models.ExamQuestion{}, fmt.Errorf("bad points %q", row[7])
	}

	return models.ExamQuestion{
		QuestionText:  strings.TrimSpace(row[4]),
		Options:       options,
		CorrectAnswer: correct,
		Points:        points,
	}, nil
}
