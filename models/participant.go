package models

// ParticipantKind tags which side of the team/user variant a ParticipantRef
// carries.
type ParticipantKind string

const (
	ParticipantTeam ParticipantKind = "team"
	ParticipantUser ParticipantKind = "user"
)

// ParticipantRef identifies exactly one competitor in a match: a team or an
// individual user. The zero value is not a valid reference.
type ParticipantRef struct {
	Kind ParticipantKind `json:"kind"`
	ID   int             `json:"id"`
}

func TeamRef(teamID int) ParticipantRef {
	return ParticipantRef{Kind: ParticipantTeam, ID: teamID}
}

func UserRef(userID int) ParticipantRef {
	return ParticipantRef{Kind: ParticipantUser, ID: userID}
}

// Valid reports whether the reference names exactly one existing side.
func (r ParticipantRef) Valid() bool {
	if r.ID <= 0 {
		return false
	}
	return r.Kind == ParticipantTeam || r.Kind == ParticipantUser
}

// MatchParticipant is a stored match entry. The table keeps two nullable
// foreign keys guarded by a CHECK constraint; the service API only ever
// sees a ParticipantRef.
type MatchParticipant struct {
	ID      int  `json:"id" db:"id"`
	MatchID int  `json:"match_id" db:"match_id"`
	TeamID  *int `json:"team_id,omitempty" db:"team_id"`
	UserID  *int `json:"user_id,omitempty" db:"user_id"`

	Team *Team `json:"team,omitempty" db:"-"`
	User *User `json:"user,omitempty" db:"-"`
}

// Ref returns the tagged reference for a stored row.
func (p MatchParticipant) Ref() ParticipantRef {
	if p.TeamID != nil {
		return TeamRef(*p.TeamID)
	}
	if p.UserID != nil {
		return UserRef(*p.UserID)
	}
	return ParticipantRef{}
}
