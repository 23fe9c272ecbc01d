// Package models defines the core domain records for maintenance operations.
package models

// Role represents the operational role assigned to a platform user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleTecnico    Role = "tecnico"
)

// KnownRole reports whether the role is one of the defined platform roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTecnico:
		return true
	default:
		return false
	}
}

// User is a platform account. Email is the identity key.
type User struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"      validate:"required"`
}
