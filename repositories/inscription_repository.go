package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrInscriptionNotFound          = errors.New("inscription not found")
	ErrInscriptionConfirmedConflict = errors.New("confirmed inscription already exists for user and game")
)

type InscriptionRepository interface {
	Create(ctx context.Context, inscription *models.IndividualInscription) error
	GetByID(ctx context.Context, id int) (*models.IndividualInscription, error)
	ListByGame(ctx context.Context, gameID int) ([]models.IndividualInscription, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
	// CountConfirmed counts confirmed inscriptions for the user+game pair,
	// excluding the row with excludeID (0 excludes nothing).
	CountConfirmed(ctx context.Context, userID, gameID, excludeID int) (int, error)
}

type postgresInscriptionRepository struct {
	db *sql.DB
}

func NewPostgresInscriptionRepository(db *sql.DB) InscriptionRepository {
	return &postgresInscriptionRepository{db: db}
}

func (r *postgresInscriptionRepository) Create(ctx context.Context, inscription *models.IndividualInscription) error {
	query := `
		INSERT INTO inscriptions (user_id, game_id, voucher_key, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		inscription.UserID,
		inscription.GameID,
		inscription.VoucherKey,
		inscription.Status,
	).Scan(&inscription.ID, &inscription.CreatedAt)

	if err != nil {
		return mapInscriptionWriteError(err)
	}
	return nil
}

func (r *postgresInscriptionRepository) GetByID(ctx context.Context, id int) (*models.IndividualInscription, error) {
	query := `
		SELECT id, user_id, game_id, voucher_key, status, created_at
		FROM inscriptions
		WHERE id = $1`

	var inscription models.IndividualInscription
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inscription.ID,
		&inscription.UserID,
		&inscription.GameID,
		&inscription.VoucherKey,
		&inscription.Status,
		&inscription.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInscriptionNotFound
		}
		return nil, err
	}
	return &inscription, nil
}

func (r *postgresInscriptionRepository) ListByGame(ctx context.Context, gameID int) ([]models.IndividualInscription, error) {
	query := `
		SELECT id, user_id, game_id, voucher_key, status, created_at
		FROM inscriptions
		WHERE game_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inscriptions := make([]models.IndividualInscription, 0)
	for rows.Next() {
		var inscription models.IndividualInscription
		scanErr := rows.Scan(
			&inscription.ID,
			&inscription.UserID,
			&inscription.GameID,
			&inscription.VoucherKey,
			&inscription.Status,
			&inscription.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		inscriptions = append(inscriptions, inscription)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return inscriptions, nil
}

func (r *postgresInscriptionRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	query := `UPDATE inscriptions SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return mapInscriptionWriteError(err)
	}
	return checkAffectedRows(result, ErrInscriptionNotFound)
}

func (r *postgresInscriptionRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM inscriptions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrInscriptionNotFound)
}

func (r *postgresInscriptionRepository) CountConfirmed(ctx context.Context, userID, gameID, excludeID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM inscriptions
		WHERE user_id = $1 AND game_id = $2 AND status = 'confirmed' AND id <> $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, gameID, excludeID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func mapInscriptionWriteError(err error) error {
	if pqConstraint(err, pqUniqueViolation) == "inscriptions_confirmed_user_game_key" {
		return ErrInscriptionConfirmedConflict
	}
	return err
}
