package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cdvtrack/internal/models"
)

// CreateUser inserts a new operator account.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.Username = strings.TrimSpace(user.Username)
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	return s.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
}

// UserByUsername fetches a user account.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, strings.TrimSpace(username))
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
