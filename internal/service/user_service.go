package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/rs/zerolog"
)

const (
	userNotFound     = "User not found"
	bookmarkNotFound = "Bookmark not found"
)

// userService is the concrete implementation of UserService
type userService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(repos *repository.Repositories, log zerolog.Logger) *userService {
	return &userService{
		repos: repos,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// GetProfile returns the user's safe fields and bookmarks, newest first
func (s *userService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if !validation.IsUUID(userID) {
		return nil, apperrors.NotFound(userNotFound)
	}
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound(userNotFound)
	}

	bookmarks, err := s.repos.Bookmark.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachPets(ctx, bookmarks); err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Bookmarks: nonNil(bookmarks),
	}, nil
}

// AddBookmark bookmarks a pet. Duplicates are rejected by the store's unique index.
func (s *userService) AddBookmark(ctx context.Context, userID, petID string) (*models.Bookmark, error) {
	if !validation.IsUUID(petID) {
		return nil, apperrors.NotFound(petNotFound)
	}
	pet, err := loadPet(ctx, s.repos, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, apperrors.NotFound(petNotFound)
	}

	bookmark := &models.Bookmark{
		ID:        uuid.New().String(),
		UserID:    userID,
		PetID:     petID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repos.Bookmark.Create(ctx, bookmark); err != nil {
		return nil, err
	}
	bookmark.Pet = pet

	s.log.Info().Str("user_id", userID).Str("pet_id", petID).Msg("Bookmark added")
	return bookmark, nil
}

// RemoveBookmark deletes the (user, pet) bookmark
func (s *userService) RemoveBookmark(ctx context.Context, userID, petID string) (*models.Message, error) {
	if !validation.IsUUID(petID) {
		return nil, apperrors.NotFound(bookmarkNotFound)
	}
	deleted, err := s.repos.Bookmark.Delete(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.NotFound(bookmarkNotFound)
	}

	s.log.Info().Str("user_id", userID).Str("pet_id", petID).Msg("Bookmark removed")
	return &models.Message{Message: "Bookmark removed"}, nil
}

func (s *userService) attachPets(ctx context.Context, bookmarks []models.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}
	ids := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.PetID
	}

	pets, err := s.repos.Pet.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if err := loadRelations(ctx, s.repos, pets); err != nil {
		return err
	}

	byID := make(map[string]*models.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}
	for i := range bookmarks {
		bookmarks[i].Pet = byID[bookmarks[i].PetID]
	}
	return nil
}
