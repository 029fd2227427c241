package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, date, results, status, round)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.Date,
		match.Results,
		match.Status,
		match.Round,
	).Scan(&match.ID)

	if err != nil {
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, date, results, status, round
		FROM matches
		WHERE id = $1`

	var match models.Match
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.TournamentID,
		&match.Date,
		&match.Results,
		&match.Status,
		&match.Round,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `
		SELECT id, tournament_id, date, results, status, round
		FROM matches
		WHERE tournament_id = $1
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		scanErr := rows.Scan(
			&match.ID,
			&match.TournamentID,
			&match.Date,
			&match.Results,
			&match.Status,
			&match.Round,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			tournament_id = $1,
			date = $2,
			results = $3,
			status = $4,
			round = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		match.TournamentID,
		match.Date,
		match.Results,
		match.Status,
		match.Round,
		match.ID,
	)
	if err != nil {
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrTournamentNotFound
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
