package enums

import "fmt"

// RoleName identifies a user role.
type RoleName string

const (
	RoleUser  RoleName = "User"
	RoleAdmin RoleName = "Admin"
)

var validRoleNames = []RoleName{RoleUser, RoleAdmin}

// String implements fmt.Stringer.
func (r RoleName) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoleName.
func (r RoleName) IsValid() bool {
	for _, candidate := range validRoleNames {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoleName converts raw input into a RoleName.
func ParseRoleName(value string) (RoleName, error) {
	for _, candidate := range validRoleNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role name %q", value)
}
