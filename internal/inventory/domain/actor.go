package domain

// Actor roles, mirrored from the user service's JWT claims. Identity is
// threaded into every core call as an explicit parameter; there is no
// ambient session.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Actor identifies who performs an operation.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
