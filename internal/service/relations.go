package service

import (
	"context"

	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
)

// loadRelations attaches media, tags and classifications to every pet with
// one query per relation. Empty relations come back as empty slices.
func loadRelations(ctx context.Context, repos *repository.Repositories, pets []*models.Pet) error {
	if len(pets) == 0 {
		return nil
	}
	ids := make([]string, len(pets))
	for i, p := range pets {
		ids[i] = p.ID
	}

	media, err := repos.Media.ListForPets(ctx, ids)
	if err != nil {
		return err
	}
	tags, err := repos.Tag.ListForPets(ctx, ids)
	if err != nil {
		return err
	}
	classifications, err := repos.Classification.ListForPets(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range pets {
		p.Media = nonNil(media[p.ID])
		p.Tags = nonNil(tags[p.ID])
		p.Classifications = nonNil(classifications[p.ID])
	}
	return nil
}

// loadPet fetches one pet by ID with its relations, or nil if absent
func loadPet(ctx context.Context, repos *repository.Repositories, id string) (*models.Pet, error) {
	pet, err := repos.Pet.GetByID(ctx, id)
	if err != nil || pet == nil {
		return nil, err
	}
	if err := loadRelations(ctx, repos, []*models.Pet{pet}); err != nil {
		return nil, err
	}
	return pet, nil
}

func flatten(pets []*models.Pet) []models.Pet {
	out := make([]models.Pet, len(pets))
	for i, p := range pets {
		out[i] = *p
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
