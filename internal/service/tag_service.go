package service

import (
	"context"

	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

// tagService is the concrete implementation of TagService
type tagService struct {
	repos *repository.Repositories
	cache TagCache
	log   zerolog.Logger
}

// newTagService creates a new TagService
func newTagService(repos *repository.Repositories, cache TagCache, log zerolog.Logger) *tagService {
	return &tagService{
		repos: repos,
		cache: cache,
		log:   log.With().Str("service", "tag").Logger(),
	}
}

// ListAll returns every tag alphabetically, reading through the cache
func (s *tagService) ListAll(ctx context.Context) ([]models.Tag, error) {
	cached, ok, err := s.cache.GetTags(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Tag cache read failed, falling back to database")
	} else if ok {
		return cached, nil
	}

	tags, err := s.repos.Tag.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tags = nonNil(tags)

	if err := s.cache.SetTags(ctx, tags); err != nil {
		s.log.Warn().Err(err).Msg("Tag cache write failed")
	}
	return tags, nil
}

// GetBySlug returns the tag and its published pets, or nil when the slug is unknown
func (s *tagService) GetBySlug(ctx context.Context, slug string) (*models.TagWithPets, error) {
	tag, err := s.repos.Tag.GetBySlug(ctx, slug)
	if err != nil || tag == nil {
		return nil, err
	}

	pets, err := s.repos.Pet.List(ctx, models.PetFilter{
		TagID:  tag.ID,
		Status: models.PetStatusPublished,
		Sort:   models.SortPublishedAt,
	})
	if err != nil {
		return nil, err
	}
	if err := loadRelations(ctx, s.repos, pets); err != nil {
		return nil, err
	}

	return &models.TagWithPets{Tag: *tag, Pets: flatten(pets)}, nil
}
