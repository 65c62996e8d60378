package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/api/metrics"
	"github.com/storemanager/store-api/internal/api/middleware"
	"github.com/storemanager/store-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), *req.Email, *req.IsAdmin, *req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Message: fmt.Sprintf("User %s was created", user.Email),
		User:    toUserResponse(user),
	})
}

// Login authenticates a user and returns an access and refresh token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), *req.Email, *req.Password)
	if err != nil {
		return err
	}
	if !res.Authenticated {
		metrics.LoginsTotal.WithLabelValues("wrong_credentials").Inc()
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "wrong credentials"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message:         fmt.Sprintf("Welcome %s", res.User.Email),
		Role:            res.User.Role(),
		AccessToken:     res.Tokens.AccessToken,
		RefreshToken:    res.Tokens.RefreshToken,
		AccessExpiresAt: res.Tokens.AccessExpiresAt,
	})
}

// Refresh exchanges the refresh token in the Authorization header for a new
// access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw, err := middleware.BearerToken(c.Request())
	if err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refreshResponse{
		AccessToken:     pair.AccessToken,
		AccessExpiresAt: pair.AccessExpiresAt,
	})
}

// Logout revokes the access token used for this request.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}
