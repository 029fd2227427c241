package models

import "time"

type MatchStatus string

const (
	MatchProgrammed MatchStatus = "programmed"
	MatchPlayed     MatchStatus = "played"
	MatchCanceled   MatchStatus = "canceled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchProgrammed, MatchPlayed, MatchCanceled:
		return true
	}
	return false
}

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Date         time.Time   `json:"date" db:"date"`
	Results      string      `json:"results" db:"results"`
	Status       MatchStatus `json:"status" db:"status"`
	Round        string      `json:"round" db:"round"`

	Participants  []MatchParticipant `json:"participants,omitempty" db:"-"`
	Transmissions []Transmission     `json:"transmissions,omitempty" db:"-"`
}
