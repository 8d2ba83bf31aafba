package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
	"cdvtrack/internal/repository"
)

type fakeUserStore struct {
	users   map[string]*models.User
	created []*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "h:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestLoginVerifiesCredentials(t *testing.T) {
	store := newFakeUserStore()
	store.users["tecnico"] = &models.User{ID: 1, Username: "tecnico", PasswordHash: "h:secret"}
	svc := NewAuthService(store, plainHasher{}, zap.NewNop())

	user, err := svc.Login(context.Background(), " tecnico ", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 1 {
		t.Errorf("user = %+v", user)
	}

	if _, err := svc.Login(context.Background(), "tecnico", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: %v", err)
	}
	if _, err := svc.Login(context.Background(), "", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("blank username: %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, plainHasher{}, zap.NewNop())

	if err := svc.EnsureAdmin(context.Background(), "admin", "pass"); err != nil {
		t.Fatal(err)
	}
	if len(store.created) != 1 || store.created[0].PasswordHash != "h:pass" {
		t.Fatalf("created = %+v", store.created)
	}

	// Idempotent on the second boot.
	if err := svc.EnsureAdmin(context.Background(), "admin", "pass"); err != nil {
		t.Fatal(err)
	}
	if len(store.created) != 1 {
		t.Error("existing admin must not be recreated")
	}

	// Unconfigured bootstrap is a no-op.
	if err := svc.EnsureAdmin(context.Background(), "", ""); err != nil {
		t.Fatal(err)
	}
	if len(store.created) != 1 {
		t.Error("blank bootstrap credentials must not create a user")
	}
}
