package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. The database enforces the same
// enumeration, so an out-of-range value must be rejected before it ever
// reaches the store.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// ParseRole validates a wire-level role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: role must be Admin or Staff", ErrInvalidInput)
	}
}

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Account models a staff or administrator login in the records system.
// PasswordHash is never serialized; external representations expose only
// id, username, role and creation time.
type Account struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
