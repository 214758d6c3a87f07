package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pet-catalog-api/internal/models"
)

const mediaColumns = "id, pet_id, url, storage_key, type, alt_text, width, height, mime_type, size, created_at"

// mediaRepo is the concrete implementation of MediaRepository
type mediaRepo struct {
	db Querier
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(db Querier) MediaRepository {
	return &mediaRepo{db: db}
}

func scanMedia(row rowScanner) (*models.Media, error) {
	var m models.Media
	err := row.Scan(&m.ID, &m.PetID, &m.URL, &m.StorageKey, &m.Type, &m.AltText,
		&m.Width, &m.Height, &m.MimeType, &m.Size, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a media record
func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, pet_id, url, storage_key, type, alt_text, width, height, mime_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		media.ID, media.PetID, media.URL, media.StorageKey, media.Type, media.AltText,
		media.Width, media.Height, media.MimeType, media.Size, media.CreatedAt,
	)
	return translate(err, "create media")
}

// GetByID retrieves a media record by ID
func (r *mediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	m, err := scanMedia(r.db.QueryRowContext(ctx, "SELECT "+mediaColumns+" FROM media WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "get media")
	}
	return m, nil
}

// Delete removes a media record
func (r *mediaRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM media WHERE id = $1", id)
	if err != nil {
		return false, translate(err, "delete media")
	}
	n, err := res.RowsAffected()
	return n > 0, translate(err, "delete media")
}

// ListForPets returns media grouped by pet ID, oldest first
func (r *mediaRepo) ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Media, error) {
	out := make(map[string][]models.Media, len(petIDs))
	if len(petIDs) == 0 {
		return out, nil
	}

	query := "SELECT " + mediaColumns + " FROM media WHERE pet_id = ANY($1) ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query, pq.Array(petIDs))
	if err != nil {
		return nil, translate(err, "list media")
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, translate(err, "list media")
		}
		if m.PetID != nil {
			out[*m.PetID] = append(out[*m.PetID], *m)
		}
	}
	return out, translate(rows.Err(), "list media")
}

// CountAll returns the total number of media records
func (r *mediaRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM media").Scan(&count)
	return count, translate(err, "count media")
}
