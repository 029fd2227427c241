package models

import "time"

// TournamentStatus represents tournament lifecycle states. Transitions are
// explicit administrative writes, never computed.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentOngoing, TournamentCompleted:
		return true
	}
	return false
}

type Tournament struct {
	ID        int              `json:"id" db:"id"`
	GameID    int              `json:"game_id" db:"game_id"`
	Name      string           `json:"name" db:"name"`
	StartDate time.Time        `json:"start_date" db:"start_date"`
	Status    TournamentStatus `json:"status" db:"status"`

	Game    *Game   `json:"game,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
