package user

import (
	"context"
	"strings"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, username, email, password string) (Session, error)
	Login(ctx context.Context, username, password string) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	GetProfile(ctx context.Context, userID uint) (Profile, error)
	UpdateProfile(ctx context.Context, p Profile) (Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, username, email, password string) (Session, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return Session{}, err
	}

	u, err := s.repo.Create(ctx, username, email, hashed)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return Session{}, ErrEmailExists
		}
		if strings.Contains(err.Error(), "users_username_key") {
			return Session{}, ErrUsernameExists
		}
		log.Error("failed to create user", zap.String("username", username), zap.Error(err))
		return Session{}, err
	}

	return s.sessionFor(ctx, u)
}

func (s *service) Login(ctx context.Context, username, password string) (Session, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return Session{}, ErrInvalidLogin
	}

	if !CheckPasswordHash(password, u.Password) {
		return Session{}, ErrInvalidLogin
	}

	return s.sessionFor(ctx, u)
}

// Refresh exchanges a valid refresh token for a new pair. The old
// refresh token is not revoked; expiry bounds its lifetime.
func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := ParseToken(refreshToken)
	if err != nil || claims.TokenType != TokenTypeRefresh {
		return Session{}, ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	return s.sessionFor(ctx, u)
}

func (s *service) sessionFor(ctx context.Context, u User) (Session, error) {
	access, refresh, err := GenerateTokenPair(u)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to generate token pair",
			zap.Uint("user_id", u.ID),
			zap.Error(err),
		)
		return Session{}, err
	}

	return Session{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uint) (Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, p Profile) (Profile, error) {
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return s.repo.GetProfile(ctx, p.UserID)
}
