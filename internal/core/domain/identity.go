package domain

// Role is the profile role assigned at sign-up.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity is the authenticated caller. A nil *Identity means the
// session is anonymous. The session boundary owns its lifecycle;
// core components receive it explicitly instead of reading globals.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

func (id *Identity) IsAuthenticated() bool {
	return id != nil && id.UserID != ""
}

func (id *Identity) IsAdmin() bool {
	return id.IsAuthenticated() && id.Role == RoleAdmin
}
