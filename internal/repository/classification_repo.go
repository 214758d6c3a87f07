package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/pet-catalog-api/internal/models"
)

// classificationRepo is the concrete implementation of ClassificationRepository
type classificationRepo struct {
	db Querier
}

// NewClassificationRepo creates a new classification repository
func NewClassificationRepo(db Querier) ClassificationRepository {
	return &classificationRepo{db: db}
}

// ReplaceForPet deletes every classification of the pet and inserts the given set.
// clock_timestamp keeps insertion order readable inside one transaction.
func (r *classificationRepo) ReplaceForPet(ctx context.Context, petID string, classifications []models.Classification) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM classifications WHERE pet_id = $1", petID); err != nil {
		return translate(err, "clear classifications")
	}

	for _, c := range classifications {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO classifications (id, pet_id, type, value, created_at) VALUES ($1, $2, $3, $4, clock_timestamp())",
			c.ID, petID, c.Type, c.Value,
		)
		if err != nil {
			return translate(err, "insert classification")
		}
	}
	return nil
}

// ListForPets returns classifications grouped by pet ID in insertion order
func (r *classificationRepo) ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Classification, error) {
	out := make(map[string][]models.Classification, len(petIDs))
	if len(petIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT id, pet_id, type, value FROM classifications
		WHERE pet_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(petIDs))
	if err != nil {
		return nil, translate(err, "list classifications")
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Classification
		if err := rows.Scan(&c.ID, &c.PetID, &c.Type, &c.Value); err != nil {
			return nil, translate(err, "list classifications")
		}
		out[c.PetID] = append(out[c.PetID], c)
	}
	return out, translate(rows.Err(), "list classifications")
}
