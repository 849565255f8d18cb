package mongo

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/forohub/forum-api/internal/core/domain"
)

type stubUserStore struct {
	count    int64
	countErr error
	created  []*domain.User
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.created {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserStore) Count(_ context.Context) (int64, error) {
	return s.count, s.countErr
}

func TestBootstrapUsers_SeedsEmptyStore(t *testing.T) {
	store := &stubUserStore{}

	if err := BootstrapUsers(context.Background(), store); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(store.created) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(store.created))
	}

	admin := store.created[0]
	if admin.Email != "admin@mail.com" || admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected first seed: %+v", admin)
	}
	if !admin.Enabled || admin.Locked {
		t.Fatalf("seeded account must be enabled and unlocked: %+v", admin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")); err != nil {
		t.Fatalf("admin password hash does not verify: %v", err)
	}

	user := store.created[1]
	if user.Email != "user@mail.com" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected second seed: %+v", user)
	}
}

func TestBootstrapUsers_SkipsWhenUsersExist(t *testing.T) {
	store := &stubUserStore{count: 3}

	if err := BootstrapUsers(context.Background(), store); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("expected no seeding on a populated store, got %d creates", len(store.created))
	}
}

func TestBootstrapUsers_PropagatesCountError(t *testing.T) {
	store := &stubUserStore{countErr: errors.New("connection reset")}

	if err := BootstrapUsers(context.Background(), store); err == nil {
		t.Fatalf("expected count error to propagate")
	}
	if len(store.created) != 0 {
		t.Fatalf("must not seed when the count fails")
	}
}
