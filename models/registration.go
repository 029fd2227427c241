package models

import "time"

// RegistrationStatus represents the review state of a team or individual
// registration. Only confirmed registrations count against the
// one-per-(actor, game) rule.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationRejected  RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationRejected:
		return true
	}
	return false
}

type Team struct {
	ID        int                `json:"id" db:"id"`
	Name      string             `json:"name" db:"name"`
	CaptainID int                `json:"captain_id" db:"captain_id"`
	GameID    int                `json:"game_id" db:"game_id"`
	Status    RegistrationStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`

	LogoKey    *string `json:"-" db:"logo_key"`
	VoucherKey *string `json:"-" db:"voucher_key"`
	LogoURL    *string `json:"logo_url,omitempty" db:"-"`

	Captain *User  `json:"captain,omitempty" db:"-"`
	Game    *Game  `json:"game,omitempty" db:"-"`
	Members []User `json:"members,omitempty" db:"-"`
}

// TeamPlayer is a roster entry linking a user to a team.
type TeamPlayer struct {
	ID     int `json:"id" db:"id"`
	TeamID int `json:"team_id" db:"team_id"`
	UserID int `json:"user_id" db:"user_id"`
}

type IndividualInscription struct {
	ID        int                `json:"id" db:"id"`
	UserID    int                `json:"user_id" db:"user_id"`
	GameID    int                `json:"game_id" db:"game_id"`
	Status    RegistrationStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`

	VoucherKey *string `json:"-" db:"voucher_key"`

	User *User `json:"user,omitempty" db:"-"`
	Game *Game `json:"game,omitempty" db:"-"`
}
