package repository

import (
	"context"

	"github.com/pet-catalog-api/internal/models"
)

// bookmarkRepo is the concrete implementation of BookmarkRepository
type bookmarkRepo struct {
	db Querier
}

// NewBookmarkRepo creates a new bookmark repository
func NewBookmarkRepo(db Querier) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

// Create inserts a bookmark. A second bookmark of the same pet by the same
// user violates bookmarks_user_id_pet_id_key and surfaces as a Conflict.
func (r *bookmarkRepo) Create(ctx context.Context, bookmark *models.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, user_id, pet_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, bookmark.ID, bookmark.UserID, bookmark.PetID, bookmark.CreatedAt)
	return translate(err, "create bookmark")
}

// Delete removes the (user, pet) bookmark and reports whether one existed
func (r *bookmarkRepo) Delete(ctx context.Context, userID, petID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE user_id = $1 AND pet_id = $2", userID, petID)
	if err != nil {
		return false, translate(err, "delete bookmark")
	}
	n, err := res.RowsAffected()
	return n > 0, translate(err, "delete bookmark")
}

// ListByUser returns the user's bookmarks, newest first. Pets are attached by the service.
func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	query := `
		SELECT id, user_id, pet_id, created_at FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "list bookmarks")
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.PetID, &b.CreatedAt); err != nil {
			return nil, translate(err, "list bookmarks")
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, translate(rows.Err(), "list bookmarks")
}
