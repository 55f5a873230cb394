package user

type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAgent, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role may act on reservations it does not
// own (validate, reject, check-in, check-out, walk-in bookings).
func (r Role) IsStaff() bool {
	return r == RoleAgent || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
