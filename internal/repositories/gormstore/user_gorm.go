package gormstore

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	row, err := userToRow(user)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err, "get user by id")
	}
	return rowToUser(&row)
}

func (r *userRepository) GetByOAuth(ctx context.Context, provider, oauthID string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).
		First(&row, "o_auth_provider = ? AND o_auth_id = ?", provider, oauthID).Error
	if err != nil {
		return nil, translateError(err, "get user by oauth")
	}
	return rowToUser(&row)
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update repositories.ProfileUpdate) (*models.User, error) {
	updates := map[string]any{}
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.GradeLevel != nil {
		updates["grade_level"] = *update.GradeLevel
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.Interests != nil {
		col, err := toJSON(update.Interests)
		if err != nil {
			return nil, err
		}
		updates["interests"] = col
	}
	if update.Subjects != nil {
		col, err := toJSON(update.Subjects)
		if err != nil {
			return nil, err
		}
		updates["subjects"] = col
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&userRow{}).
			Where("user_id = ?", userID).
			Updates(updates)
		if res.Error != nil {
			return nil, translateError(res.Error, "update profile")
		}
		if res.RowsAffected == 0 {
			return nil, repositories.ErrNotFound
		}
	}
	return r.GetByID(ctx, userID)
}

func (r *userRepository) TouchLastActive(ctx context.Context, userID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&userRow{}).
		Where("user_id = ?", userID).
		Update("last_active", at)
	if res.Error != nil {
		return translateError(res.Error, "touch last active")
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *userRepository) Search(ctx context.Context, filters repositories.StudentFilters) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&userRow{}).
		Where("user_id <> ?", filters.ExcludeUserID)

	if filters.GradeLevel != nil {
		query = query.Where("grade_level = ?", *filters.GradeLevel)
	}
	if filters.Query != nil {
		pattern := "%" + *filters.Query + "%"
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(bio) LIKE LOWER(?)", pattern, pattern)
	}
	// the subject filter matches inside a JSON array column and has to run
	// after scanning, so the SQL limit only applies when it is absent
	if filters.Subject == nil && filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var rows []userRow
	if err := query.Order("user_id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "search students")
	}

	users := make([]*models.User, 0, len(rows))
	for i := range rows {
		u, err := rowToUser(&rows[i])
		if err != nil {
			return nil, err
		}
		if filters.Subject != nil && !containsSubject(u.Subjects, *filters.Subject) {
			continue
		}
		users = append(users, u)
		if filters.Limit > 0 && len(users) == filters.Limit {
			break
		}
	}
	return users, nil
}

func containsSubject(subjects []string, target string) bool {
	for _, s := range subjects {
		if strings.EqualFold(s, target) {
			return true
		}
	}
	return false
}
