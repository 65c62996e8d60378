package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// TokenService issues, validates and revokes signed JWTs.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    ports.RevocationStore
	log        zerolog.Logger
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, revoked ports.RevocationStore, log zerolog.Logger) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		revoked:    revoked,
		log:        log,
		now:        time.Now,
	}
}

// Issue returns a fresh access and refresh token for user. Both tokens
// belong to a new session.
func (s *TokenService) Issue(user *domain.User) (*domain.TokenPair, error) {
	session := uuid.NewString()
	access, exp, err := s.sign(user.Email, user.IsAdmin, session, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, _, err := s.sign(user.Email, user.IsAdmin, session, domain.TokenRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh, AccessExpiresAt: exp}, nil
}

// IssueAccess returns an access token with the identity and session of from.
func (s *TokenService) IssueAccess(from *domain.Claims) (string, time.Time, error) {
	return s.sign(from.Subject, from.IsAdmin, from.SessionID, domain.TokenAccess, s.accessTTL)
}

func (s *TokenService) sign(subject string, isAdmin bool, session string, typ domain.TokenType, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := domain.Claims{
		IsAdmin:   isAdmin,
		Type:      typ,
		SessionID: session,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate parses raw and checks signature, expiry, token type and the
// revocation set. Every rejection wraps domain.ErrUnauthenticated; other
// errors come from the revocation store.
func (s *TokenService) Validate(ctx context.Context, raw string, expected domain.TokenType) (*domain.Claims, error) {
	claims := &domain.Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Type != expected {
		return nil, fmt.Errorf("%w: expected %s token, got %q", domain.ErrUnauthenticated, expected, claims.Type)
	}
	if claims.ID == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%w: token has no id", domain.ErrUnauthenticated)
	}

	for _, key := range []string{claims.ID, sessionKey(claims.SessionID)} {
		revoked, err := s.revoked.IsRevoked(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token has been revoked", domain.ErrUnauthenticated)
		}
	}
	return claims, nil
}

// Revoke adds the token id to the revocation set until the token expires and
// ends its session, so sibling refresh tokens stop working too. No token of a
// session outlives now plus the refresh TTL.
func (s *TokenService) Revoke(ctx context.Context, claims *domain.Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.Expiry()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if claims.SessionID != "" {
		if err := s.revoked.Revoke(ctx, sessionKey(claims.SessionID), s.now().Add(s.refreshTTL)); err != nil {
			return fmt.Errorf("revoke session: %w", err)
		}
	}
	s.log.Info().Str("jti", claims.ID).Str("sid", claims.SessionID).Str("type", string(claims.Type)).Msg("token revoked")
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

// IsUnauthenticated reports whether err is a token rejection.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated)
}
