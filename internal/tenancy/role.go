package tenancy

import (
	"errors"
	"strings"
)

// Role is the closed set of access levels a staff member can hold.
type Role string

// Known roles. Adding a role requires extending the permission table and its
// exhaustiveness test.
const (
	RoleAdministrator Role = "administrator"
	RoleSupervisor    Role = "supervisor"
	RoleTeacher       Role = "teacher"
)

// ErrUnknownRole indicates a role string outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleAdministrator, RoleSupervisor, RoleTeacher}
}

// ParseRole normalizes and validates a role string.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdministrator:
		return RoleAdministrator, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	case RoleTeacher:
		return RoleTeacher, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
