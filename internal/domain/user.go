package domain

import "time"

// Role is the access level of a user account
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User represents a portal account.
//
// PasswordChangedAt is nil until the first password change after creation.
// It is the sole mechanism for invalidating previously issued session
// tokens: any token issued before this timestamp is rejected on its next
// revalidation.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
}
