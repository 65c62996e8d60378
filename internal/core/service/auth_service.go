package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores input past 72 bytes
)

// AuthService implements registration, login and token lifecycle.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *TokenService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, validate: validator.New(), log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email string, isAdmin bool, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError("password", "must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return nil, domain.NewValidationError("password", "must be at most %d characters", maxPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		IsAdmin:      isAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewValidationError("email", "is already registered")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", created.Email).Str("role", string(created.Role())).Msg("user registered")
	return created, nil
}

// Authenticate returns the user whose credentials match, or nil when the
// email is unknown or the password is wrong. The two cases are not
// distinguished.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Debug().Str("email", normalizeEmail(email)).Msg("login rejected")
		return &ports.LoginResult{Authenticated: false}, nil
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Authenticated: true, User: user, Tokens: pair}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.Validate(ctx, refreshToken, domain.TokenRefresh)
	if err != nil {
		return nil, err
	}
	access, exp, err := s.tokens.IssueAccess(claims)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refreshToken, AccessExpiresAt: exp}, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	return s.tokens.Revoke(ctx, claims)
}
