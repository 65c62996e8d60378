package handler

import (
	"time"

	"github.com/storemanager/store-api/internal/core/domain"
)

// errorResponse is the error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// messageResponse carries a plain business message.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

// Required fields are pointers so a missing key is told apart from a zero value.
type signupRequest struct {
	Email    *string `json:"email"    validate:"required"`
	IsAdmin  *bool   `json:"is_admin" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type userResponse struct {
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsAdmin   bool        `json:"is_admin"`
	CreatedAt time.Time   `json:"created_at"`
}

type signupResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginRequest struct {
	Email    *string `json:"email"    validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message         string      `json:"message"`
	Role            domain.Role `json:"role"`
	AccessToken     string      `json:"access_token"`
	RefreshToken    string      `json:"refresh_token"`
	AccessExpiresAt time.Time   `json:"access_expires_at"`
}

type refreshResponse struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

// --- Products ---

type productRequest struct {
	ProductName *string  `json:"product_name" validate:"required"`
	Category    *string  `json:"category"     validate:"required"`
	Quantity    *int     `json:"quantity"     validate:"required"`
	UnitPrice   *float64 `json:"unit_price"   validate:"required"`
}

type productCreatedResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type productListResponse struct {
	Message  string            `json:"message"`
	Products []*domain.Product `json:"products"`
}

// --- Sales ---

type saleRequest struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity"   validate:"required"`
}

type insufficientStockResponse struct {
	Message   string `json:"message"`
	Available int    `json:"available"`
}

type saleResponse struct {
	Message string       `json:"message"`
	Sale    *domain.Sale `json:"sale"`
}

type saleListResponse struct {
	Message string         `json:"message"`
	Sales   []*domain.Sale `json:"sales"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Email: u.Email, Role: u.Role(), IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}
