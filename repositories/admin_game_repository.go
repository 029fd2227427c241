package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrAdminGameLinkNotFound = errors.New("admin game link not found")
	ErrAdminGameLinkConflict = errors.New("admin game link conflict")
)

// AdminGameRepository maintains the ownership link recording which admin
// accounts may partially manage which games.
type AdminGameRepository interface {
	Link(ctx context.Context, adminID, gameID int) error
	Unlink(ctx context.Context, adminID, gameID int) error
	Exists(ctx context.Context, adminID, gameID int) (bool, error)
	ListGamesByAdmin(ctx context.Context, adminID int) ([]models.Game, error)
}

type postgresAdminGameRepository struct {
	db *sql.DB
}

func NewPostgresAdminGameRepository(db *sql.DB) AdminGameRepository {
	return &postgresAdminGameRepository{db: db}
}

func (r *postgresAdminGameRepository) Link(ctx context.Context, adminID, gameID int) error {
	query := `INSERT INTO admin_games (admin_id, game_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, adminID, gameID)
	if err != nil {
		if pqConstraint(err, pqUniqueViolation) == "admin_games_admin_id_game_id_key" {
			return ErrAdminGameLinkConflict
		}
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrAdminGameLinkNotFound
		}
		return err
	}
	return nil
}

func (r *postgresAdminGameRepository) Unlink(ctx context.Context, adminID, gameID int) error {
	query := `DELETE FROM admin_games WHERE admin_id = $1 AND game_id = $2`

	result, err := r.db.ExecContext(ctx, query, adminID, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAdminGameLinkNotFound)
}

func (r *postgresAdminGameRepository) Exists(ctx context.Context, adminID, gameID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM admin_games WHERE admin_id = $1 AND game_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, adminID, gameID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresAdminGameRepository) ListGamesByAdmin(ctx context.Context, adminID int) ([]models.Game, error) {
	query := `
		SELECT g.id, g.name, g.description, g.category, g.rules_key, g.cover_key, g.active
		FROM games g
		JOIN admin_games ag ON ag.game_id = g.id
		WHERE ag.admin_id = $1
		ORDER BY g.name ASC`

	rows, err := r.db.QueryContext(ctx, query, adminID)
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
