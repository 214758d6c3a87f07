package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/rs/zerolog"
)

const mediaNotFound = "Media not found"

// mediaService is the concrete implementation of MediaService
type mediaService struct {
	repos   *repository.Repositories
	store   ObjectStore
	maxSize int64
	log     zerolog.Logger
}

// newMediaService creates a new MediaService
func newMediaService(repos *repository.Repositories, store ObjectStore, maxSize int64, log zerolog.Logger) *mediaService {
	return &mediaService{
		repos:   repos,
		store:   store,
		maxSize: maxSize,
		log:     log.With().Str("service", "media").Logger(),
	}
}

// Upload stores the file and records it, optionally attached to a pet
func (s *mediaService) Upload(ctx context.Context, in *models.UploadMediaInput) (*models.Media, error) {
	if in == nil || in.Body == nil || in.Size <= 0 {
		return nil, apperrors.Validation("No file uploaded", nil)
	}
	if s.maxSize > 0 && in.Size > s.maxSize {
		return nil, apperrors.Validation(fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxSize), nil)
	}
	if in.PetID != nil {
		if !validation.IsUUID(*in.PetID) {
			return nil, apperrors.NotFound(petNotFound)
		}
		pet, err := s.repos.Pet.GetByID(ctx, *in.PetID)
		if err != nil {
			return nil, err
		}
		if pet == nil {
			return nil, apperrors.NotFound(petNotFound)
		}
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id := uuid.New().String()
	key := id + strings.ToLower(filepath.Ext(in.Filename))

	url, err := s.store.Put(ctx, key, contentType, in.Body, in.Size)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "Failed to store uploaded file")
	}

	media := &models.Media{
		ID:         id,
		PetID:      in.PetID,
		URL:        url,
		StorageKey: key,
		Type:       models.MediaTypeFor(contentType),
		AltText:    in.AltText,
		MimeType:   contentType,
		Size:       in.Size,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repos.Media.Create(ctx, media); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	s.log.Info().
		Str("media_id", media.ID).
		Str("type", string(media.Type)).
		Int64("size", media.Size).
		Msg("Media uploaded")

	return media, nil
}

// Delete removes the record, then the stored object
func (s *mediaService) Delete(ctx context.Context, id string) (*models.Message, error) {
	if !validation.IsUUID(id) {
		return nil, apperrors.NotFound(mediaNotFound)
	}
	media, err := s.repos.Media.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, apperrors.NotFound(mediaNotFound)
	}

	deleted, err := s.repos.Media.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.NotFound(mediaNotFound)
	}

	if err := s.store.Delete(ctx, media.StorageKey); err != nil {
		s.log.Warn().Err(err).Str("key", media.StorageKey).Msg("Failed to remove stored object")
	}

	s.log.Info().Str("media_id", id).Msg("Media deleted")
	return &models.Message{Message: "Media deleted successfully"}, nil
}
