package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account types on the platform. Every identity
// carries exactly one role for its whole lifetime; there is no role-change
// operation anywhere in the system.
type Role string

const (
	RoleStudent      Role = "student"
	RoleOrganization Role = "organization"
	RoleUniversity   Role = "university"
	RoleAdmin        Role = "admin"
)

// ParseRole validates a raw role string coming from storage or a request.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleOrganization, RoleUniversity, RoleAdmin:
		return Role(raw), nil
	default:
		return "", WrapError(ErrCodeInvalid, "unknown role", fmt.Errorf("role %q", raw))
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOrganization, RoleUniversity, RoleAdmin:
		return true
	}
	return false
}

// HomePath returns the default dashboard path for the role. Unrecognized
// roles land on the site root.
func (r Role) HomePath() string {
	switch r {
	case RoleStudent:
		return "/student/dashboard"
	case RoleOrganization:
		return "/organization/dashboard"
	case RoleUniversity:
		return "/university/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}

// User represents an authenticated identity on the platform.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Verified     bool      `json:"verified"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
