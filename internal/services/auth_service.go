package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall-app/studyhall-service/internal/auth"
	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{repo: repo, tokens: tokens, logger: logger, validator: v}
}

func (s *authService) LoginAnonymous(ctx context.Context) (*AuthResponse, error) {
	now := time.Now()
	user := &models.User{
		UserID:      "anon_" + uuid.NewString(),
		Username:    fmt.Sprintf("Anonymous_%04d", rand.Intn(10000)),
		IsAnonymous: true,
		IsVerified:  false,
		Interests:   []string{},
		Subjects:    []string{},
		CreatedAt:   now,
		LastActive:  now,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create anonymous user: %w", err)
	}

	token, err := s.tokens.Issue(user.UserID, user.Username, true, false)
	if err != nil {
		return nil, err
	}

	s.logger.Info("anonymous login", "user_id", user.UserID)
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) LoginOAuth(ctx context.Context, req OAuthLoginRequest) (*AuthResponse, error) {
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	user, err := s.repo.User().GetByOAuth(ctx, req.Provider, req.OAuthID)
	switch {
	case err == nil:
		// Returning user; refresh activity.
		if err := s.repo.User().TouchLastActive(ctx, user.UserID, time.Now()); err != nil {
			s.logger.Warn("touch last active", "user_id", user.UserID, "error", err)
		}

	case repositories.IsNotFoundError(err):
		user = s.newOAuthUser(req)
		if err := s.repo.User().Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create oauth user: %w", err)
		}
		s.logger.Info("oauth signup", "user_id", user.UserID, "provider", req.Provider)

	default:
		return nil, fmt.Errorf("lookup oauth user: %w", err)
	}

	token, err := s.tokens.Issue(user.UserID, user.Username, false, true)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) newOAuthUser(req OAuthLoginRequest) *models.User {
	now := time.Now()
	username := fmt.Sprintf("%s_user_%04d", req.Provider, rand.Intn(10000))
	if req.Username != nil && *req.Username != "" {
		username = *req.Username
	}
	provider := req.Provider
	oauthID := req.OAuthID
	return &models.User{
		UserID:        fmt.Sprintf("%s_%s", req.Provider, uuid.NewString()),
		Username:      username,
		Email:         req.Email,
		IsAnonymous:   false,
		IsVerified:    true,
		Interests:     []string{},
		Subjects:      []string{},
		OAuthProvider: &provider,
		OAuthID:       &oauthID,
		CreatedAt:     now,
		LastActive:    now,
	}
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*VerifyResponse, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return &VerifyResponse{Valid: false}, nil
	}

	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &VerifyResponse{Valid: false}, nil
		}
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	return &VerifyResponse{Valid: true, User: user}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
