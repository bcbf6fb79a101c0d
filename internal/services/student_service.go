package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

const studentSearchLimit = 50

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) StudentService {
	return &studentService{repo: repo, logger: logger, validator: v}
}

func (s *studentService) Search(ctx context.Context, callerID string, gradeLevel *int, subject, query *string) (*StudentListResponse, error) {
	if gradeLevel != nil && (*gradeLevel < 1 || *gradeLevel > 12) {
		return nil, NewValidationError("gradeLevel", "must be between 1 and 12", *gradeLevel)
	}

	users, err := s.repo.User().Search(ctx, repositories.StudentFilters{
		GradeLevel:    gradeLevel,
		Subject:       subject,
		Query:         query,
		ExcludeUserID: callerID,
		Limit:         studentSearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}

	profiles := make([]*models.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return &StudentListResponse{Students: profiles}, nil
}

func (s *studentService) Profile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

func (s *studentService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().UpdateProfile(ctx, userID, repositories.ProfileUpdate{
		Username:   req.Username,
		GradeLevel: req.GradeLevel,
		Bio:        req.Bio,
		Interests:  req.Interests,
		Subjects:   req.Subjects,
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}
