package domain

import "time"

type Role string

const (
	RolePilot Role = "pilot"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Staff reports whether the role bypasses ownership checks.
func (r Role) Staff() bool {
	return r == RoleAgent || r == RoleAdmin
}

type User struct {
	ID           int64
	Role         Role
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Username     string
	License      *string
	Medical      *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the caller context extracted from an access token.
type Identity struct {
	ID   int64
	Role Role
}
