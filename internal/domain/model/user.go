package model

// Role is an access level of authenticated caller.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Principal identifies the caller of an operation.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether principal may act on other users' orders.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Credential is a configured login allowed to obtain tokens.
type Credential struct {
	Login        string
	PasswordHash string
	UserID       string
	Role         Role
}
