package ports

import (
	"context"
	"time"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
}
