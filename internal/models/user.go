package models

import (
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// ParseRole maps a token claim onto the closed set of roles.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleInstructor:
		return RoleInstructor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanAuthor reports whether the role may create or edit course content.
func (r UserRole) CanAuthor() bool {
	switch r {
	case RoleInstructor, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleStudent:
		return false
	default:
		return false
	}
}

// CurrentUser is the acting user resolved once from the bearer token and
// passed explicitly to every workflow that needs it.
type CurrentUser struct {
	ID   ID       `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

type Instructor struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Student struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
