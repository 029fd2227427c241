package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamConfirmedConflict = errors.New("confirmed team already exists for captain and game")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByGame(ctx context.Context, gameID int) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
	// CountConfirmed counts confirmed teams for the captain+game pair,
	// excluding the row with excludeID (0 excludes nothing).
	CountConfirmed(ctx context.Context, captainID, gameID, excludeID int) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, captain_id, game_id, logo_key, voucher_key, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.CaptainID,
		team.GameID,
		team.LogoKey,
		team.VoucherKey,
		team.Status,
	).Scan(&team.ID, &team.CreatedAt)

	if err != nil {
		return mapTeamWriteError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, captain_id, game_id, logo_key, voucher_key, status, created_at
		FROM teams
		WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.CaptainID,
		&team.GameID,
		&team.LogoKey,
		&team.VoucherKey,
		&team.Status,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListByGame(ctx context.Context, gameID int) ([]models.Team, error) {
	query := `
		SELECT id, name, captain_id, game_id, logo_key, voucher_key, status, created_at
		FROM teams
		WHERE game_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		scanErr := rows.Scan(
			&team.ID,
			&team.Name,
			&team.CaptainID,
			&team.GameID,
			&team.LogoKey,
			&team.VoucherKey,
			&team.Status,
			&team.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET
			name = $1,
			captain_id = $2,
			game_id = $3,
			logo_key = $4,
			voucher_key = $5,
			status = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.CaptainID,
		team.GameID,
		team.LogoKey,
		team.VoucherKey,
		team.Status,
		team.ID,
	)
	if err != nil {
		return mapTeamWriteError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	query := `UPDATE teams SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return mapTeamWriteError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) CountConfirmed(ctx context.Context, captainID, gameID, excludeID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM teams
		WHERE captain_id = $1 AND game_id = $2 AND status = 'confirmed' AND id <> $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, captainID, gameID, excludeID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// mapTeamWriteError translates the partial unique index backing the
// one-confirmed-team-per-captain-and-game rule, so the second of two racing
// confirmations fails here instead of silently duplicating.
func mapTeamWriteError(err error) error {
	if pqConstraint(err, pqUniqueViolation) == "teams_confirmed_captain_game_key" {
		return ErrTeamConfirmedConflict
	}
	return err
}
