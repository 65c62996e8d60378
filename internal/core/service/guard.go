package service

import (
	"fmt"

	"github.com/storemanager/store-api/internal/core/domain"
)

// Authorize admits claims whose role is in allowed. Missing claims fail with
// domain.ErrUnauthenticated, any other role with domain.ErrForbidden.
func Authorize(claims *domain.Claims, allowed ...domain.Role) error {
	if claims == nil {
		return domain.ErrUnauthenticated
	}
	role := claims.Role()
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	if len(allowed) == 1 {
		return fmt.Errorf("%w: %s rights required", domain.ErrForbidden, allowed[0])
	}
	return fmt.Errorf("%w: role %s not permitted", domain.ErrForbidden, role)
}

func RequireAdmin(claims *domain.Claims) error {
	return Authorize(claims, domain.RoleAdmin)
}

func RequireAttendant(claims *domain.Claims) error {
	return Authorize(claims, domain.RoleAttendant)
}

func RequireAuthenticated(claims *domain.Claims) error {
	return Authorize(claims, domain.RoleAdmin, domain.RoleAttendant)
}
