package ports

import (
	"context"

	"github.com/tinymarket/market/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts the user unless the username is taken, in which case
	// domain.ErrUserExists is returned and nothing is written.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateBio(ctx context.Context, id, bio string) error
}
