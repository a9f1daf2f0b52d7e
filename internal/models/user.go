package models

import "strings"

// Role represents the access level of an account.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Valid reports whether the role is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// ParseRole matches a role name case-insensitively.
func ParseRole(value string) (Role, bool) {
	for _, role := range []Role{RoleAdmin, RoleTeacher, RoleStudent} {
		if strings.EqualFold(strings.TrimSpace(value), string(role)) {
			return role, true
		}
	}
	return "", false
}

// IsStaff reports whether the role may manage activities and attendance.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// User is a registered account. The JSON keys match the users collection file.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         Role   `json:"role"`
	DisplayName  string `json:"name"`
	Description  string `json:"description"`
	Grade        string `json:"grade"`
}
