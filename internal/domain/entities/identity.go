package entities

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Requester is the authenticated caller as asserted by the identity service token.
type Requester struct {
	UserID string
	Role   Role
}

func (r Requester) IsAdmin() bool { return r.Role == RoleAdmin }

// CanRead reports whether the requester may see or act on p.
func (r Requester) CanRead(p Payment) bool {
	return r.IsAdmin() || p.OwnedBy(r.UserID)
}
