package gradeauth

import (
	"encoding/json"
	"strings"
)

// Role is an authorization category a platform account belongs to. Roles are
// used for membership checks only; there is no hierarchy between them.
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	default:
		return false
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleStudent,
		RoleTeacher,
	}
}

// ParseRole safely parses a string into a Role type. Matching is
// case-insensitive so form selectors can submit "student" or "teacher".
func ParseRole(roleStr string) (Role, bool) {
	for _, role := range GetAllRoles() {
		if strings.EqualFold(roleStr, string(role)) {
			return role, true
		}
	}
	return Role(roleStr), false
}

// RoleList is the normalized form of the "roles" claim. The platform issues
// either a JSON array or a bare string for single-role accounts; a bare
// string is wrapped into a one-element list on decode.
type RoleList []Role

// Contains reports membership of a role in the list.
func (l RoleList) Contains(role Role) bool {
	for _, r := range l {
		if r == role {
			return true
		}
	}
	return false
}

func (l *RoleList) UnmarshalJSON(data []byte) error {
	var many []Role
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one Role
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = RoleList{one}
	return nil
}
