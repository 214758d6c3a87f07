package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pet-catalog-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db Querier
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db Querier) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, pet_id, user_id, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PetID, comment.UserID, comment.Content, comment.Status,
		comment.CreatedAt, comment.UpdatedAt,
	)
	return translate(err, "create comment")
}

// UpdateStatus sets the moderation status and returns the updated comment, or nil if it does not exist
func (r *commentRepo) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	query := `
		UPDATE comments SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, pet_id, user_id, content, status, created_at, updated_at
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id, status, time.Now().UTC()).Scan(
		&comment.ID, &comment.PetID, &comment.UserID, &comment.Content, &comment.Status,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "update comment status")
	}
	return &comment, nil
}

// ListByPet returns the pet's comments with the given status, newest first, each with its author
func (r *commentRepo) ListByPet(ctx context.Context, petID string, status models.CommentStatus) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.pet_id, c.user_id, c.content, c.status, c.created_at, c.updated_at,
			u.id, u.name, u.email
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.pet_id = $1 AND c.status = $2
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, petID, status)
	if err != nil {
		return nil, translate(err, "list comments")
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		var author models.UserSummary
		err := rows.Scan(
			&comment.ID, &comment.PetID, &comment.UserID, &comment.Content, &comment.Status,
			&comment.CreatedAt, &comment.UpdatedAt,
			&author.ID, &author.Name, &author.Email,
		)
		if err != nil {
			return nil, translate(err, "list comments")
		}
		comment.User = &author
		comments = append(comments, comment)
	}
	return comments, translate(rows.Err(), "list comments")
}

// CountAll returns the total number of comments
func (r *commentRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, translate(err, "count comments")
}
