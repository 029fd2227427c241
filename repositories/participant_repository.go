package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrParticipantNotFound = errors.New("match participant not found")
	ErrParticipantConflict = errors.New("participant is already attached to the match")
	ErrParticipantInvalid  = errors.New("participant must reference exactly one of team or user")
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.MatchParticipant) error
	GetByID(ctx context.Context, id int) (*models.MatchParticipant, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.MatchParticipant, error)
	Delete(ctx context.Context, id int) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Create(ctx context.Context, participant *models.MatchParticipant) error {
	query := `
		INSERT INTO match_participants (match_id, team_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		participant.MatchID,
		participant.TeamID,
		participant.UserID,
	).Scan(&participant.ID)

	if err != nil {
		switch pqConstraint(err, pqUniqueViolation) {
		case "match_participants_match_team_key", "match_participants_match_user_key":
			return ErrParticipantConflict
		}
		if pqConstraint(err, pqCheckViolation) == "match_participants_one_side_check" {
			return ErrParticipantInvalid
		}
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id int) (*models.MatchParticipant, error) {
	query := `
		SELECT id, match_id, team_id, user_id
		FROM match_participants
		WHERE id = $1`

	var participant models.MatchParticipant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&participant.ID,
		&participant.MatchID,
		&participant.TeamID,
		&participant.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (r *postgresParticipantRepository) ListByMatch(ctx context.Context, matchID int) ([]models.MatchParticipant, error) {
	query := `
		SELECT id, match_id, team_id, user_id
		FROM match_participants
		WHERE match_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]models.MatchParticipant, 0)
	for rows.Next() {
		var participant models.MatchParticipant
		scanErr := rows.Scan(
			&participant.ID,
			&participant.MatchID,
			&participant.TeamID,
			&participant.UserID,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		participants = append(participants, participant)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM match_participants WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
