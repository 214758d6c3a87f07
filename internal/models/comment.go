package models

import (
	"time"
)

// CommentStatus is the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "PENDING"
	CommentStatusApproved CommentStatus = "APPROVED"
	CommentStatusRejected CommentStatus = "REJECTED"
)

// Comment represents a user comment on a pet
type Comment struct {
	ID        string        `json:"id" db:"id"`
	PetID     string        `json:"petId" db:"pet_id"`
	UserID    string        `json:"userId" db:"user_id"`
	Content   string        `json:"content" db:"content"`
	Status    CommentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`
}

// CreateCommentInput is the body of POST /comments
type CreateCommentInput struct {
	PetID   string `json:"petId" validate:"required"`
	Content string `json:"content" validate:"required,notblank,max=5000"`
}
