// Package access holds the actor identity model and the role-based access
// guard. All role branching for application records lives here and in the
// state machine, not at call sites.
package access

import (
	dErrors "lendfold/pkg/domain-errors"
)

// Role is the closed set of actor roles understood by the portal. The session
// provider supplies the role as a string; ParseRole is the only place that
// string is interpreted.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a raw role string onto the closed enum. Unknown values are
// rejected so a misconfigured session provider cannot smuggle in a role that
// silently falls through permission checks.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return Role(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeUnauthorized, "unknown actor role")
	}
}

// Actor is the already-authenticated identity attached to every operation.
// The core never performs login; it consumes this pair from the session
// provider and passes it explicitly, never through ambient state.
type Actor struct {
	ID    string
	Role  Role
	Email string
}

// IsStaff reports whether the actor is an employee or admin.
func (a Actor) IsStaff() bool {
	return a.Role == RoleEmployee || a.Role == RoleAdmin
}

// Valid reports whether the actor carries both an id and a known role.
func (a Actor) Valid() bool {
	if a.ID == "" {
		return false
	}
	_, err := ParseRole(string(a.Role))
	return err == nil
}
