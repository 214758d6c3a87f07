package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pet-catalog-api/internal/models"
)

const petColumns = `p.id, p.slug, p.common_name, p.scientific_name, p.short_intro, p.background,
	p.history, p.diet, p.ownership_guide, p.status, p.published_at, p.created_at, p.updated_at`

// sortColumns whitelists ORDER BY expressions; the listing always sorts descending
var sortColumns = map[string]string{
	models.SortPublishedAt: "p.published_at DESC NULLS LAST",
	models.SortCreatedAt:   "p.created_at DESC",
	models.SortCommonName:  "p.common_name DESC",
}

// petRepo is the concrete implementation of PetRepository
type petRepo struct {
	db Querier
}

// NewPetRepo creates a new pet repository
func NewPetRepo(db Querier) PetRepository {
	return &petRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPet(row rowScanner) (*models.Pet, error) {
	var pet models.Pet
	var publishedAt sql.NullTime

	err := row.Scan(
		&pet.ID, &pet.Slug, &pet.CommonName, &pet.ScientificName, &pet.ShortIntro, &pet.Background,
		&pet.History, &pet.Diet, &pet.OwnershipGuide, &pet.Status, &publishedAt, &pet.CreatedAt, &pet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		pet.PublishedAt = &publishedAt.Time
	}
	return &pet, nil
}

// Create inserts a new pet
func (r *petRepo) Create(ctx context.Context, pet *models.Pet) error {
	query := `
		INSERT INTO pets (id, slug, common_name, scientific_name, short_intro, background, history,
			diet, ownership_guide, status, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		pet.ID, pet.Slug, pet.CommonName, pet.ScientificName, pet.ShortIntro, pet.Background, pet.History,
		pet.Diet, pet.OwnershipGuide, pet.Status, pet.PublishedAt, pet.CreatedAt, pet.UpdatedAt,
	)
	return translate(err, "create pet")
}

// Update writes every scalar column of pet
func (r *petRepo) Update(ctx context.Context, pet *models.Pet) error {
	query := `
		UPDATE pets SET slug = $2, common_name = $3, scientific_name = $4, short_intro = $5,
			background = $6, history = $7, diet = $8, ownership_guide = $9, status = $10,
			published_at = $11, updated_at = $12
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		pet.ID, pet.Slug, pet.CommonName, pet.ScientificName, pet.ShortIntro, pet.Background,
		pet.History, pet.Diet, pet.OwnershipGuide, pet.Status, pet.PublishedAt, pet.UpdatedAt,
	)
	return translate(err, "update pet")
}

// Delete removes a pet; relations go with it through ON DELETE CASCADE
func (r *petRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pets WHERE id = $1", id)
	if err != nil {
		return false, translate(err, "delete pet")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate(err, "delete pet")
	}
	return n > 0, nil
}

// GetByID retrieves a pet by ID
func (r *petRepo) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

// GetBySlug retrieves a pet by its exact slug
func (r *petRepo) GetBySlug(ctx context.Context, slug string) (*models.Pet, error) {
	return r.getOne(ctx, "p.slug = $1", slug)
}

func (r *petRepo) getOne(ctx context.Context, where string, arg interface{}) (*models.Pet, error) {
	query := "SELECT " + petColumns + " FROM pets p WHERE " + where

	pet, err := scanPet(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "get pet")
	}
	return pet, nil
}

// GetByIDs retrieves pets by ID, in no particular order
func (r *petRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + petColumns + " FROM pets p WHERE p.id = ANY($1)"
	return r.query(ctx, query, pq.Array(ids))
}

// List returns one page of pets matching filter
func (r *petRepo) List(ctx context.Context, filter models.PetFilter) ([]*models.Pet, error) {
	query, args := buildPetListQuery(filter)
	return r.query(ctx, query, args...)
}

// Count returns the number of pets matching filter, ignoring pagination
func (r *petRepo) Count(ctx context.Context, filter models.PetFilter) (int, error) {
	where, args := buildPetWhere(filter)

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pets p"+where, args...).Scan(&count)
	return count, translate(err, "count pets")
}

// Suggest returns published pets whose common name starts with prefix
func (r *petRepo) Suggest(ctx context.Context, prefix string, limit int) ([]models.PetSuggestion, error) {
	query := `
		SELECT id, slug, common_name FROM pets
		WHERE status = $1 AND common_name ILIKE $2
		ORDER BY common_name ASC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, models.PetStatusPublished, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, translate(err, "suggest pets")
	}
	defer rows.Close()

	suggestions := []models.PetSuggestion{}
	for rows.Next() {
		var s models.PetSuggestion
		if err := rows.Scan(&s.ID, &s.Slug, &s.CommonName); err != nil {
			return nil, translate(err, "suggest pets")
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, translate(rows.Err(), "suggest pets")
}

// CountAll returns the total number of pets
func (r *petRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pets").Scan(&count)
	return count, translate(err, "count pets")
}

func (r *petRepo) query(ctx context.Context, query string, args ...interface{}) ([]*models.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "list pets")
	}
	defer rows.Close()

	pets := []*models.Pet{}
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, translate(err, "list pets")
		}
		pets = append(pets, pet)
	}
	return pets, translate(rows.Err(), "list pets")
}

// buildPetWhere renders the WHERE clause shared by List and Count
func buildPetWhere(f models.PetFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "p.status = "+next(f.Status))
	}
	if f.Q != "" {
		p := next("%" + escapeLike(f.Q) + "%")
		conds = append(conds, fmt.Sprintf("(p.common_name ILIKE %s OR p.scientific_name ILIKE %s OR p.short_intro ILIKE %s)", p, p, p))
	}
	if f.Tag != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM pet_tags pt JOIN tags t ON t.id = pt.tag_id "+
			"WHERE pt.pet_id = p.id AND LOWER(t.name) = LOWER("+next(f.Tag)+"))")
	}
	if f.TagID != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM pet_tags pt WHERE pt.pet_id = p.id AND pt.tag_id = "+next(f.TagID)+")")
	}
	if f.Classification != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM classifications c WHERE c.pet_id = p.id AND c.value ILIKE "+
			next("%"+escapeLike(f.Classification)+"%")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildPetListQuery renders the full paginated SELECT for filter
func buildPetListQuery(f models.PetFilter) (string, []interface{}) {
	where, args := buildPetWhere(f)

	order, ok := sortColumns[f.Sort]
	if !ok {
		order = sortColumns[models.SortPublishedAt]
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + petColumns + " FROM pets p")
	sb.WriteString(where)
	sb.WriteString(" ORDER BY " + order + ", p.id DESC")

	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
		args = append(args, f.Offset())
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}
	return sb.String(), args
}
