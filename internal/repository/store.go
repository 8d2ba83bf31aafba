package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cdvtrack/internal/models"
)

var (
	// ErrStationNotFound represents missing station rows.
	ErrStationNotFound = errors.New("station not found")
	// ErrUserNotFound represents missing user rows.
	ErrUserNotFound = errors.New("user not found")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx gives reading writes that share one database transaction.
type Tx interface {
	LatestSameDayTransmitter(ctx context.Context, key ReadingKey) (*models.Transmitter, error)
	InsertTransmitter(ctx context.Context, t *models.Transmitter) error
	UpdateTransmitter(ctx context.Context, t *models.Transmitter) error
	LatestSameDayReceiver(ctx context.Context, key ReadingKey) (*models.Receiver, error)
	InsertReceiver(ctx context.Context, r *models.Receiver) error
	UpdateReceiver(ctx context.Context, r *models.Receiver) error
}

// Store is the Postgres-backed persistence layer.
type Store struct {
	db *sql.DB
}

// NewStore returns a store over the given pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn inside a single transaction. Any error (or panic) rolls the
// whole batch back.
func (s *Store) InTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(&readingTx{q: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	done = true
	return nil
}

type readingTx struct {
	q DBTX
}
