package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pet-catalog-api/internal/models"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db Querier
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db Querier) TagRepository {
	return &tagRepo{db: db}
}

// FindOrCreate returns the tag named name, inserting it with slug if it does not exist yet.
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *tagRepo) FindOrCreate(ctx context.Context, name, slug string) (*models.Tag, error) {
	query := `
		INSERT INTO tags (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, created_at
	`
	var tag models.Tag
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), name, slug, time.Now().UTC()).
		Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)
	if err != nil {
		return nil, translate(err, "upsert tag")
	}
	return &tag, nil
}

// GetBySlug retrieves a tag by slug
func (r *tagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRowContext(ctx, "SELECT id, name, slug, created_at FROM tags WHERE slug = $1", slug).
		Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "get tag")
	}
	return &tag, nil
}

// ListAll returns every tag ordered by name
func (r *tagRepo) ListAll(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug, created_at FROM tags ORDER BY name ASC")
	if err != nil {
		return nil, translate(err, "list tags")
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, translate(err, "list tags")
		}
		tags = append(tags, tag)
	}
	return tags, translate(rows.Err(), "list tags")
}

// SetForPet replaces the pet's tag associations with tagIDs
func (r *tagRepo) SetForPet(ctx context.Context, petID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM pet_tags WHERE pet_id = $1", petID); err != nil {
		return translate(err, "clear pet tags")
	}
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO pet_tags (pet_id, tag_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, petID, pq.Array(tagIDs))
	return translate(err, "set pet tags")
}

// ListForPets returns tags grouped by pet ID, each group ordered by name
func (r *tagRepo) ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Tag, error) {
	out := make(map[string][]models.Tag, len(petIDs))
	if len(petIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT pt.pet_id, t.id, t.name, t.slug, t.created_at
		FROM pet_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.pet_id = ANY($1)
		ORDER BY t.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(petIDs))
	if err != nil {
		return nil, translate(err, "list pet tags")
	}
	defer rows.Close()

	for rows.Next() {
		var petID string
		var tag models.Tag
		if err := rows.Scan(&petID, &tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, translate(err, "list pet tags")
		}
		out[petID] = append(out[petID], tag)
	}
	return out, translate(rows.Err(), "list pet tags")
}
