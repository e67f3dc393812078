package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a profile can hold.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole converts a role string received from the auth backend.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "member", "user", "authenticated":
		return RoleMember, nil
	case "admin", "administrator":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// IsAdmin reports whether r grants write access to the roster.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Profile is the application-side record of an authenticated user.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
