package mongo

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
	"github.com/forohub/forum-api/pkg/logger"
)

// seed describes one default account created on first start.
type seed struct {
	email    string
	username string
	password string
	role     string
}

var defaultUsers = []seed{
	{email: "admin@mail.com", username: "admin", password: "admin123", role: domain.RoleAdmin},
	{email: "user@mail.com", username: "user", password: "user123", role: domain.RoleUser},
}

// BootstrapUsers seeds the default accounts. Idempotent: when any user record
// already exists it does nothing.
func BootstrapUsers(ctx context.Context, repo ports.UserRepository) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap users: %w", err)
	}
	if n > 0 {
		return nil
	}

	log := logger.Get()
	now := time.Now().UTC()
	for _, s := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("bootstrap users: hash %s: %w", s.email, err)
		}
		_, err = repo.Create(ctx, &domain.User{
			Email:        s.email,
			Username:     s.username,
			PasswordHash: string(hash),
			Role:         s.role,
			Enabled:      true,
			Locked:       false,
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("bootstrap users: create %s: %w", s.email, err)
		}
		log.Info().Str("email", s.email).Str("role", s.role).Msg("default user seeded")
	}
	return nil
}
