package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNameConflict = errors.New("game name conflict")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	GetAll(ctx context.Context, onlyActive bool) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (name, description, category, rules_key, cover_key, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		game.Name,
		game.Description,
		game.Category,
		game.RulesKey,
		game.CoverKey,
		game.Active,
	).Scan(&game.ID)

	if err != nil {
		if pqConstraint(err, pqUniqueViolation) == "games_name_key" {
			return ErrGameNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT id, name, description, category, rules_key, cover_key, active
		FROM games
		WHERE id = $1`

	var game models.Game
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID,
		&game.Name,
		&game.Description,
		&game.Category,
		&game.RulesKey,
		&game.CoverKey,
		&game.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (r *postgresGameRepository) GetAll(ctx context.Context, onlyActive bool) ([]models.Game, error) {
	query := `
		SELECT id, name, description, category, rules_key, cover_key, active
		FROM games`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var game models.Game
		scanErr := rows.Scan(
			&game.ID,
			&game.Name,
			&game.Description,
			&game.Category,
			&game.RulesKey,
			&game.CoverKey,
			&game.Active,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games SET
			name = $1,
			description = $2,
			category = $3,
			rules_key = $4,
			cover_key = $5,
			active = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		game.Name,
		game.Description,
		game.Category,
		game.RulesKey,
		game.CoverKey,
		game.Active,
		game.ID,
	)
	if err != nil {
		if pqConstraint(err, pqUniqueViolation) == "games_name_key" {
			return ErrGameNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE games SET active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	// Teams, inscriptions and tournaments cascade with the game.
	query := `DELETE FROM games WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM games WHERE name = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
