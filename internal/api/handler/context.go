package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/api/middleware"
	"github.com/storemanager/store-api/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Their
// absence means the route was mounted without Auth.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
