package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrRosterEntryNotFound = errors.New("roster entry not found")
	ErrRosterConflict      = errors.New("user is already on the team roster")
)

type TeamPlayerRepository interface {
	Add(ctx context.Context, entry *models.TeamPlayer) error
	Remove(ctx context.Context, teamID, userID int) error
	ListByTeam(ctx context.Context, teamID int) ([]models.User, error)
}

type postgresTeamPlayerRepository struct {
	db *sql.DB
}

func NewPostgresTeamPlayerRepository(db *sql.DB) TeamPlayerRepository {
	return &postgresTeamPlayerRepository{db: db}
}

func (r *postgresTeamPlayerRepository) Add(ctx context.Context, entry *models.TeamPlayer) error {
	query := `INSERT INTO team_players (team_id, user_id) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, entry.TeamID, entry.UserID).Scan(&entry.ID)
	if err != nil {
		if pqConstraint(err, pqUniqueViolation) == "team_players_team_id_user_id_key" {
			return ErrRosterConflict
		}
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrRosterEntryNotFound
		}
		return err
	}
	return nil
}

func (r *postgresTeamPlayerRepository) Remove(ctx context.Context, teamID, userID int) error {
	query := `DELETE FROM team_players WHERE team_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

func (r *postgresTeamPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.nickname, u.phone, u.email, u.role, u.password_hash, u.created_at
		FROM users u
		JOIN team_players tp ON tp.user_id = u.id
		WHERE tp.team_id = $1
		ORDER BY u.nickname ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		scanErr := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Nickname,
			&user.Phone,
			&user.Email,
			&user.Role,
			&user.PasswordHash,
			&user.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
