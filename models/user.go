package models

import "time"

// UserRole represents account roles, matching the ENUM in the database.
type UserRole string

const (
	RolePlayer     UserRole = "player"
	RoleCaptain    UserRole = "captain"
	RoleAdmin      UserRole = "admin"
	RoleSuperadmin UserRole = "superadmin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RolePlayer, RoleCaptain, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsAdminTier reports whether the role grants access to the administration console.
func (r UserRole) IsAdminTier() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Nickname     string    `json:"nickname" db:"nickname"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	Email        string    `json:"email,omitempty" db:"email"`
	Role         UserRole  `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Games the account may manage, populated by the admin service.
	Games []Game `json:"games,omitempty" db:"-"`
}
