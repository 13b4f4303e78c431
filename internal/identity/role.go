// AngelaMos | 2026
// role.go

package identity

// Role classifies an authenticated identity by which profile table owns
// it. RoleNone means the identity is authenticated but not provisioned
// in any profile table, which is a valid state rather than an error.
type Role string

const (
	RoleNone     Role = ""
	RoleUser     Role = "user"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

func (r Role) Resolved() bool {
	return r != RoleNone
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}
