package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetAll(ctx context.Context) ([]models.Tournament, error)
	ListByGame(ctx context.Context, gameID int) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (game_id, name, start_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		tournament.GameID,
		tournament.Name,
		tournament.StartDate,
		tournament.Status,
	).Scan(&tournament.ID)

	if err != nil {
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, game_id, name, start_date, status
		FROM tournaments
		WHERE id = $1`

	var tournament models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.GameID,
		&tournament.Name,
		&tournament.StartDate,
		&tournament.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *postgresTournamentRepository) GetAll(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, game_id, name, start_date, status
		FROM tournaments
		ORDER BY start_date ASC`
	return r.list(ctx, query)
}

func (r *postgresTournamentRepository) ListByGame(ctx context.Context, gameID int) ([]models.Tournament, error) {
	query := `
		SELECT id, game_id, name, start_date, status
		FROM tournaments
		WHERE game_id = $1
		ORDER BY start_date ASC`
	return r.list(ctx, query, gameID)
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			game_id = $1,
			name = $2,
			start_date = $3,
			status = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		tournament.GameID,
		tournament.Name,
		tournament.StartDate,
		tournament.Status,
		tournament.ID,
	)
	if err != nil {
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrGameNotFound
		}
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM tournaments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var tournament models.Tournament
		scanErr := rows.Scan(
			&tournament.ID,
			&tournament.GameID,
			&tournament.Name,
			&tournament.StartDate,
			&tournament.Status,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, tournament)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}
