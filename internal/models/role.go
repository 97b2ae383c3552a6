package models

// Role is the closed set of roles a user can hold. Anything outside the set
// parses to RoleUnknown, which no permitted-role list ever contains.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleEditor  Role = "editor"
	RoleUser    Role = "user"
	RoleUnknown Role = ""
)

// ParseRole maps a stored or client-supplied role string onto the closed set.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEditor:
		return RoleEditor
	case RoleUser:
		return RoleUser
	default:
		return RoleUnknown
	}
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleUser
}

// In reports whether the role is one of the permitted roles. RoleUnknown is
// never permitted, regardless of the set.
func (r Role) In(permitted ...Role) bool {
	if !r.Valid() {
		return false
	}
	for _, p := range permitted {
		if r == p {
			return true
		}
	}
	return false
}
