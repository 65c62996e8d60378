package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
	"github.com/storemanager/store-api/internal/core/service"
)

const claimsKey = "claims"

var (
	errMissingHeader = echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	errInvalidHeader = echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
)

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

// Auth validates the bearer token as a token of the given type and injects
// its claims into the context.
func Auth(tokens ports.TokenValidator, typ domain.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := BearerToken(c.Request())
			if err != nil {
				return err
			}

			claims, err := tokens.Validate(c.Request().Context(), raw, typ)
			if err != nil {
				if service.IsUnauthenticated(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
				}
				return err
			}

			SetClaims(c, claims)
			return next(c)
		}
	}
}

// SetClaims stores claims on the request context.
func SetClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims set by Auth, or nil.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}
