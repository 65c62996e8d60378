package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/service"
)

// RBAC enforces role-based access control on the claims set by Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := service.Authorize(ClaimsFrom(c), allowedRoles...)
			switch {
			case err == nil:
				return next(c)
			case errors.Is(err, domain.ErrUnauthenticated):
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			default:
				return c.JSON(http.StatusForbidden, map[string]string{"error": forbiddenMessage(allowedRoles)})
			}
		}
	}
}

func forbiddenMessage(allowed []domain.Role) string {
	if len(allowed) == 1 {
		switch allowed[0] {
		case domain.RoleAdmin:
			return "Admin rights required!"
		case domain.RoleAttendant:
			return "Attendant rights required!"
		}
	}
	return "forbidden"
}

func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}

func RequireAttendant() echo.MiddlewareFunc {
	return RBAC(domain.RoleAttendant)
}

func RequireAuthenticated() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleAttendant)
}
