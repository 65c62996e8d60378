package ports

import (
	"context"

	"github.com/storemanager/store-api/internal/core/domain"
)

// LoginResult is returned by Login. Wrong credentials are reported with
// Authenticated=false rather than an error.
type LoginResult struct {
	Authenticated bool
	User          *domain.User
	Tokens        *domain.TokenPair
}

type AuthService interface {
	Register(ctx context.Context, email string, isAdmin bool, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, claims *domain.Claims) error
}

// TokenValidator resolves a raw bearer token to its claims.
type TokenValidator interface {
	Validate(ctx context.Context, raw string, expected domain.TokenType) (*domain.Claims, error)
}
