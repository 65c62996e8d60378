package domain

import "time"

// Role is the binary access level of an authenticated caller.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAttendant Role = "attendant"
)

// RoleFor maps the stored is_admin flag to its Role.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleAttendant
}

// User models a registered account. Users are never updated or deleted.
type User struct {
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"is_admin"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role returns the access level derived from IsAdmin.
func (u *User) Role() Role {
	return RoleFor(u.IsAdmin)
}
