package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes short-lived access tokens from refresh tokens.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// Claims is the JWT payload issued by the token authority. The unique token
// id lives in RegisteredClaims.ID (jti) and the user email in Subject.
// SessionID is shared by every token minted from one login.
type Claims struct {
	IsAdmin   bool      `json:"is_admin"`
	Type      TokenType `json:"type"`
	SessionID string    `json:"sid"`
	jwt.RegisteredClaims
}

// Role returns the caller's access level.
func (c *Claims) Role() Role {
	return RoleFor(c.IsAdmin)
}

// Expiry returns the token expiry, or the zero time when unset.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenPair is returned on login.
type TokenPair struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token,omitempty"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}
