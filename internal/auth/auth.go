package auth

// Role is the caller's access level. There are exactly three.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func (r Role) String() string {
	return string(r)
}

// ParseRole maps a wire value onto a known role. Unknown values are
// reported rather than defaulted so a misconfigured gateway fails loudly.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return Role(value), true
	}
	return "", false
}

// Allowed reports whether a caller holding role satisfies the requirement.
// An empty requirement list means the route is open to any caller.
func Allowed(role Role, required ...Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
