package domain

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Role         AdminRole `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

func (r AdminRole) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// HasRole implements the two nested capability levels: every superadmin
// is also an admin, never the other way around.
func (a *Admin) HasRole(required AdminRole) bool {
	switch required {
	case RoleSuperAdmin:
		return a.Role == RoleSuperAdmin
	case RoleAdmin:
		return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
	default:
		return false
	}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateAdminInput struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}
