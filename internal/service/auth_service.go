package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
	"cdvtrack/internal/password"
	"cdvtrack/internal/repository"
)

// ErrInvalidCredentials represents login failure.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// UserStore defines the storage contract used by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService verifies operator credentials.
type AuthService struct {
	store  UserStore
	hasher password.Hasher
	logger *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(store UserStore, hasher password.Hasher, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, logger: logger}
}

// Login authenticates an operator.
func (s *AuthService) Login(ctx context.Context, username, pass string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// EnsureAdmin creates the bootstrap operator account when it does not exist.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, pass string) error {
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		return nil
	}

	if _, err := s.store.UserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("bootstrap user created", zap.String("username", username))
	return nil
}
