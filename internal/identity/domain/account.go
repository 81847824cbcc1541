package domain

import "time"

// Role is the coarse authorization tier attached to an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

// Account is the durable record of a registered identity. Created exactly
// once by the registrar; never mutated by this service afterwards. The
// PasswordHash is opaque (bcrypt) and must never cross the store boundary
// into a response.
type Account struct {
	ID           string
	Email        string // globally unique, case-sensitive as stored
	PasswordHash string
	Name         string // optional display name, "" when absent
	Role         Role
	CreatedAt    time.Time
}

// Principal is the transient identity+role derived from a verified
// credential or a valid session token. Not persisted.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// Principal projects the account into its transient identity form.
func (a Account) Principal() Principal {
	return Principal{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
}
