package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneos/esports-api/models"
)

var (
	ErrMediaNotFound   = errors.New("media content not found")
	ErrContactNotFound = errors.New("contact info not found")
)

type MediaRepository interface {
	Create(ctx context.Context, media *models.MediaContent) error
	GetByID(ctx context.Context, id int) (*models.MediaContent, error)
	GetAll(ctx context.Context) ([]models.MediaContent, error)
	Delete(ctx context.Context, id int) error
}

type postgresMediaRepository struct {
	db *sql.DB
}

func NewPostgresMediaRepository(db *sql.DB) MediaRepository {
	return &postgresMediaRepository{db: db}
}

func (r *postgresMediaRepository) Create(ctx context.Context, media *models.MediaContent) error {
	query := `
		INSERT INTO media_content (title, file_key, type)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at`

	return r.db.QueryRowContext(ctx, query,
		media.Title,
		media.FileKey,
		media.Type,
	).Scan(&media.ID, &media.UploadedAt)
}

func (r *postgresMediaRepository) GetByID(ctx context.Context, id int) (*models.MediaContent, error) {
	query := `
		SELECT id, title, file_key, type, uploaded_at
		FROM media_content
		WHERE id = $1`

	var media models.MediaContent
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&media.ID,
		&media.Title,
		&media.FileKey,
		&media.Type,
		&media.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *postgresMediaRepository) GetAll(ctx context.Context) ([]models.MediaContent, error) {
	query := `
		SELECT id, title, file_key, type, uploaded_at
		FROM media_content
		ORDER BY uploaded_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MediaContent, 0)
	for rows.Next() {
		var media models.MediaContent
		scanErr := rows.Scan(
			&media.ID,
			&media.Title,
			&media.FileKey,
			&media.Type,
			&media.UploadedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, media)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresMediaRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM media_content WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMediaNotFound)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *models.ContactInfo) error
	GetAll(ctx context.Context) ([]models.ContactInfo, error)
	Update(ctx context.Context, contact *models.ContactInfo) error
	Delete(ctx context.Context, id int) error
}

type postgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) ContactRepository {
	return &postgresContactRepository{db: db}
}

func (r *postgresContactRepository) Create(ctx context.Context, contact *models.ContactInfo) error {
	query := `INSERT INTO contact_info (platform, link) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, contact.Platform, contact.Link).Scan(&contact.ID)
}

func (r *postgresContactRepository) GetAll(ctx context.Context) ([]models.ContactInfo, error) {
	query := `SELECT id, platform, link FROM contact_info ORDER BY platform ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]models.ContactInfo, 0)
	for rows.Next() {
		var contact models.ContactInfo
		if scanErr := rows.Scan(&contact.ID, &contact.Platform, &contact.Link); scanErr != nil {
			return nil, scanErr
		}
		contacts = append(contacts, contact)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *postgresContactRepository) Update(ctx context.Context, contact *models.ContactInfo) error {
	query := `UPDATE contact_info SET platform = $1, link = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, contact.Platform, contact.Link, contact.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrContactNotFound)
}

func (r *postgresContactRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM contact_info WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrContactNotFound)
}
