package ports

import (
	"context"
	"time"

	"github.com/storemanager/store-api/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
// Create must fail with domain.ErrUserExists when the email is taken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RevocationStore holds the ids of tokens invalidated before their natural
// expiry. Entries may be dropped once expiresAt has passed.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
