package domain

import (
	"fmt"
	"strings"
)

// Role is a program role, ordered from least to most privileged
type Role string

const (
	RolePending             Role = "pending"
	RoleGuest               Role = "guest"
	RoleStudent             Role = "student"
	RoleVolunteerInstructor Role = "volunteer_instructor"
	RoleInstructor          Role = "instructor"
	RoleLeadInstructor      Role = "lead_instructor"
	RoleAdmin               Role = "admin"
	RoleSuperadmin          Role = "superadmin"
)

var roleLevels = map[Role]int{
	RolePending:             0,
	RoleGuest:               1,
	RoleStudent:             2,
	RoleVolunteerInstructor: 3,
	RoleInstructor:          4,
	RoleLeadInstructor:      5,
	RoleAdmin:               6,
	RoleSuperadmin:          7,
}

// ParseRole parses a role name
func ParseRole(value string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := roleLevels[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
	return r, nil
}

// AtLeast returns true if the role is the same as or above min.
// Unknown roles never satisfy any minimum.
func (r Role) AtLeast(min Role) bool {
	level, ok := roleLevels[r]
	if !ok {
		return false
	}
	minLevel, ok := roleLevels[min]
	if !ok {
		return false
	}
	return level >= minLevel
}

// Capability is derived once per request from the session user
type Capability struct {
	UserID  string
	Role    Role
	CanEdit bool
}

// NewCapability derives the capability of a user given the minimum edit role
func NewCapability(userID string, role Role, minEditRole Role) Capability {
	return Capability{
		UserID:  userID,
		Role:    role,
		CanEdit: role.AtLeast(minEditRole),
	}
}

// ReadOnly returns a capability that can view but never edit
func ReadOnly(userID string, role Role) Capability {
	return Capability{UserID: userID, Role: role}
}
