package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/rs/zerolog"
)

const commentNotFound = "Comment not found"

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(repos *repository.Repositories, v *validation.Validator, log zerolog.Logger) *commentService {
	return &commentService{
		repos:     repos,
		validator: v,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// Create stores a comment by userID. New comments always start PENDING.
func (s *commentService) Create(ctx context.Context, userID string, in *models.CreateCommentInput) (*models.Comment, error) {
	if err := s.validator.ValidateComment(in); err != nil {
		return nil, err
	}
	if !validation.IsUUID(in.PetID) {
		return nil, apperrors.NotFound(petNotFound)
	}

	pet, err := s.repos.Pet.GetByID(ctx, in.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, apperrors.NotFound(petNotFound)
	}

	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound(userNotFound)
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		PetID:     pet.ID,
		UserID:    user.ID,
		Content:   strings.TrimSpace(in.Content),
		Status:    models.CommentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = user.Summary()

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("pet_id", pet.ID).
		Str("user_id", user.ID).
		Msg("Comment submitted for moderation")

	return comment, nil
}

// ListApproved returns the pet's approved comments, newest first
func (s *commentService) ListApproved(ctx context.Context, petID string) ([]models.Comment, error) {
	if !validation.IsUUID(petID) {
		return []models.Comment{}, nil
	}
	comments, err := s.repos.Comment.ListByPet(ctx, petID, models.CommentStatusApproved)
	if err != nil {
		return nil, err
	}
	return nonNil(comments), nil
}

// Approve makes a comment publicly visible, whatever its current status
func (s *commentService) Approve(ctx context.Context, id string) (*models.Comment, error) {
	return s.transition(ctx, id, models.CommentStatusApproved)
}

// Reject hides a comment, whatever its current status
func (s *commentService) Reject(ctx context.Context, id string) (*models.Comment, error) {
	return s.transition(ctx, id, models.CommentStatusRejected)
}

func (s *commentService) transition(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	if !validation.IsUUID(id) {
		return nil, apperrors.NotFound(commentNotFound)
	}

	comment, err := s.repos.Comment.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperrors.NotFound(commentNotFound)
	}

	s.log.Info().Str("comment_id", id).Str("status", string(status)).Msg("Comment moderated")
	return comment, nil
}
