package model

import "fmt"

// Role is the permission tier of a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may review or remove items.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// ParseRole converts s into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// ActivityMethod identifies the action recorded in the activity log.
type ActivityMethod string

const (
	ActivitySignup  ActivityMethod = "signup"
	ActivityLogin   ActivityMethod = "login"
	ActivityPublish ActivityMethod = "publish"
	ActivityReview  ActivityMethod = "review"
	ActivityRemoval ActivityMethod = "removal"
)

// Valid reports whether m is one of the known methods.
func (m ActivityMethod) Valid() bool {
	switch m {
	case ActivitySignup, ActivityLogin, ActivityPublish, ActivityReview, ActivityRemoval:
		return true
	}
	return false
}

// ParseActivityMethod converts s into an ActivityMethod, rejecting unknown values.
func ParseActivityMethod(s string) (ActivityMethod, error) {
	m := ActivityMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown activity method %q", s)
	}
	return m, nil
}

// ActivityStatus is the outcome of a logged action.
type ActivityStatus string

const (
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusFailed    ActivityStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityStatusCompleted, ActivityStatusPending, ActivityStatusFailed:
		return true
	}
	return false
}

// ParseActivityStatus converts s into an ActivityStatus, rejecting unknown values.
func ParseActivityStatus(s string) (ActivityStatus, error) {
	st := ActivityStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown activity status %q", s)
	}
	return st, nil
}
