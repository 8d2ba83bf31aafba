package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Session is the browser session payload kept in redis.
type Session struct {
	ID       string `json:"id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Store manages browser sessions and the duplicate-submission guard.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns a redis-backed session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(id string) string {
	return fmt.Sprintf("cdv:session:%s", id)
}

func (s *Store) submitKey(id string) string {
	return fmt.Sprintf("cdv:submit:%s", id)
}

// Create opens a new session for the user.
func (s *Store) Create(ctx context.Context, userID int64, username string) (*Session, error) {
	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session for the id, refreshing its TTL.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	result, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(result), &sess); err != nil {
		return nil, err
	}
	_ = s.client.Expire(ctx, s.key(id), s.ttl).Err()
	return &sess, nil
}

// Delete ends a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id), s.submitKey(id)).Err()
}

// SubmitGuardWindow is how long a session must wait between batch submissions.
const SubmitGuardWindow = 1500 * time.Millisecond

// AllowSubmission reports whether the session may submit a batch now. The
// first call inside the window wins; later calls are rejected until the key
// expires.
func (s *Store) AllowSubmission(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.submitKey(sessionID), time.Now().UnixMilli(), SubmitGuardWindow).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
