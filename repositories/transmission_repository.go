package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var ErrTransmissionNotFound = errors.New("transmission not found")

type TransmissionRepository interface {
	Create(ctx context.Context, transmission *models.Transmission) error
	ListByMatch(ctx context.Context, matchID int) ([]models.Transmission, error)
	Update(ctx context.Context, transmission *models.Transmission) error
	Delete(ctx context.Context, id int) error
}

type postgresTransmissionRepository struct {
	db *sql.DB
}

func NewPostgresTransmissionRepository(db *sql.DB) TransmissionRepository {
	return &postgresTransmissionRepository{db: db}
}

func (r *postgresTransmissionRepository) Create(ctx context.Context, transmission *models.Transmission) error {
	query := `
		INSERT INTO transmissions (match_id, platform, url)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		transmission.MatchID,
		transmission.Platform,
		transmission.URL,
	).Scan(&transmission.ID)

	if err != nil {
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

func (r *postgresTransmissionRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Transmission, error) {
	query := `
		SELECT id, match_id, platform, url
		FROM transmissions
		WHERE match_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transmissions := make([]models.Transmission, 0)
	for rows.Next() {
		var transmission models.Transmission
		scanErr := rows.Scan(
			&transmission.ID,
			&transmission.MatchID,
			&transmission.Platform,
			&transmission.URL,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		transmissions = append(transmissions, transmission)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transmissions, nil
}

func (r *postgresTransmissionRepository) Update(ctx context.Context, transmission *models.Transmission) error {
	query := `
		UPDATE transmissions SET
			match_id = $1,
			platform = $2,
			url = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		transmission.MatchID,
		transmission.Platform,
		transmission.URL,
		transmission.ID,
	)
	if err != nil {
		if pqConstraint(err, pqForeignKeyViolation) != "" {
			return ErrMatchNotFound
		}
		return err
	}
	return checkAffectedRows(result, ErrTransmissionNotFound)
}

func (r *postgresTransmissionRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM transmissions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTransmissionNotFound)
}
