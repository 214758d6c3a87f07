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

const petNotFound = "Pet not found"

// catalogService is the concrete implementation of CatalogService
type catalogService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	tags      TagCache
	log       zerolog.Logger
	now       func() time.Time
}

// newCatalogService creates a new CatalogService
func newCatalogService(repos *repository.Repositories, v *validation.Validator, tags TagCache, log zerolog.Logger) *catalogService {
	return &catalogService{
		repos:     repos,
		validator: v,
		tags:      tags,
		log:       log.With().Str("service", "catalog").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a pet with its tags and classifications in one transaction
func (s *catalogService) Create(ctx context.Context, in *models.CreatePetInput) (*models.Pet, error) {
	if err := s.validator.ValidatePetInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	pet := &models.Pet{
		ID:             uuid.New().String(),
		Slug:           in.Slug,
		CommonName:     in.CommonName,
		ScientificName: in.ScientificName,
		ShortIntro:     in.ShortIntro,
		Background:     in.Background,
		History:        in.History,
		Diet:           in.Diet,
		OwnershipGuide: in.OwnershipGuide,
		Status:         in.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if pet.Status == "" {
		pet.Status = models.PetStatusDraft
	}
	if pet.Status == models.PetStatusPublished {
		pet.PublishedAt = &now
	}

	err := s.repos.Tx.WithinTx(ctx, func(tx *repository.Repositories) error {
		if err := tx.Pet.Create(ctx, pet); err != nil {
			return err
		}
		if len(in.Tags) > 0 {
			if err := s.setTags(ctx, tx, pet.ID, in.Tags); err != nil {
				return err
			}
		}
		if len(in.Classifications) > 0 {
			return tx.Classification.ReplaceForPet(ctx, pet.ID, newClassifications(pet.ID, in.Classifications))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(in.Tags) > 0 {
		s.invalidateTags(ctx)
	}

	s.log.Info().
		Str("pet_id", pet.ID).
		Str("slug", pet.Slug).
		Str("status", string(pet.Status)).
		Msg("Pet created")

	return s.reload(ctx, pet.ID)
}

// List returns one page of pets matching the query
func (s *catalogService) List(ctx context.Context, query models.PetListQuery) (*models.PetPage, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}
	filter := query.Filter()
	filter.Q = strings.TrimSpace(filter.Q)
	filter.Tag = strings.TrimSpace(filter.Tag)
	filter.Classification = strings.TrimSpace(filter.Classification)

	total, err := s.repos.Pet.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	pets, err := s.repos.Pet.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := loadRelations(ctx, s.repos, pets); err != nil {
		return nil, err
	}

	return &models.PetPage{
		Data: flatten(pets),
		Meta: models.NewPageMeta(total, filter.Page, filter.Limit),
	}, nil
}

// GetBySlug returns a pet with its relations and approved comments
func (s *catalogService) GetBySlug(ctx context.Context, slug string) (*models.PetDetail, error) {
	pet, err := s.repos.Pet.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, apperrors.NotFound(petNotFound)
	}
	if err := loadRelations(ctx, s.repos, []*models.Pet{pet}); err != nil {
		return nil, err
	}

	comments, err := s.repos.Comment.ListByPet(ctx, pet.ID, models.CommentStatusApproved)
	if err != nil {
		return nil, err
	}

	return &models.PetDetail{Pet: *pet, Comments: nonNil(comments)}, nil
}

// Update applies a partial patch. publishedAt is only ever set once.
func (s *catalogService) Update(ctx context.Context, id string, in *models.UpdatePetInput) (*models.Pet, error) {
	if !validation.IsUUID(id) {
		return nil, apperrors.NotFound(petNotFound)
	}
	if err := s.validator.ValidatePetUpdate(in); err != nil {
		return nil, err
	}

	var prevStatus models.PetStatus
	err := s.repos.Tx.WithinTx(ctx, func(tx *repository.Repositories) error {
		pet, err := tx.Pet.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if pet == nil {
			return apperrors.NotFound(petNotFound)
		}
		prevStatus = pet.Status

		s.applyPatch(pet, in)
		if err := tx.Pet.Update(ctx, pet); err != nil {
			return err
		}
		if in.Tags != nil {
			if err := s.setTags(ctx, tx, pet.ID, *in.Tags); err != nil {
				return err
			}
		}
		if in.Classifications != nil {
			return tx.Classification.ReplaceForPet(ctx, pet.ID, newClassifications(pet.ID, *in.Classifications))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.Tags != nil {
		s.invalidateTags(ctx)
	}

	event := s.log.Info().Str("pet_id", id)
	if in.Status != nil && *in.Status != prevStatus {
		event = event.Str("from", string(prevStatus)).Str("to", string(*in.Status))
	}
	event.Msg("Pet updated")

	return s.reload(ctx, id)
}

// Delete removes a pet; its relations are removed by the store
func (s *catalogService) Delete(ctx context.Context, id string) (*models.Message, error) {
	if !validation.IsUUID(id) {
		return nil, apperrors.NotFound(petNotFound)
	}

	deleted, err := s.repos.Pet.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.NotFound(petNotFound)
	}

	// pet_tags rows went with the pet, which may change tag listings
	s.invalidateTags(ctx)

	s.log.Info().Str("pet_id", id).Msg("Pet deleted")
	return &models.Message{Message: "Pet deleted successfully"}, nil
}

func (s *catalogService) applyPatch(pet *models.Pet, in *models.UpdatePetInput) {
	if in.Slug != nil {
		pet.Slug = *in.Slug
	}
	if in.CommonName != nil {
		pet.CommonName = *in.CommonName
	}
	if in.ScientificName != nil {
		pet.ScientificName = in.ScientificName
	}
	if in.ShortIntro != nil {
		pet.ShortIntro = in.ShortIntro
	}
	if in.Background != nil {
		pet.Background = in.Background
	}
	if in.History != nil {
		pet.History = in.History
	}
	if in.Diet != nil {
		pet.Diet = in.Diet
	}
	if in.OwnershipGuide != nil {
		pet.OwnershipGuide = in.OwnershipGuide
	}
	now := s.now()
	if in.Status != nil {
		pet.Status = *in.Status
		if pet.Status == models.PetStatusPublished && pet.PublishedAt == nil {
			pet.PublishedAt = &now
		}
	}
	pet.UpdatedAt = now
}

// setTags finds or creates each named tag and replaces the pet's associations.
// Names are trimmed and associated once even if repeated.
func (s *catalogService) setTags(ctx context.Context, tx *repository.Repositories, petID string, names []string) error {
	seen := make(map[string]bool, len(names))
	ids := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		seen[name] = true

		slug := Slugify(name)
		if slug == "" {
			return apperrors.Validation("tag name must contain letters or numbers", []validation.ValidationError{
				{Field: "tags", Message: "tag name must contain letters or numbers", Value: name},
			})
		}
		tag, err := tx.Tag.FindOrCreate(ctx, name, slug)
		if err != nil {
			return err
		}
		ids = append(ids, tag.ID)
	}
	return tx.Tag.SetForPet(ctx, petID, ids)
}

func (s *catalogService) invalidateTags(ctx context.Context) {
	if err := s.tags.InvalidateTags(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate tag cache")
	}
}

func (s *catalogService) reload(ctx context.Context, id string) (*models.Pet, error) {
	pet, err := loadPet(ctx, s.repos, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, apperrors.NotFound(petNotFound)
	}
	return pet, nil
}

func newClassifications(petID string, in []models.ClassificationInput) []models.Classification {
	out := make([]models.Classification, len(in))
	for i, c := range in {
		out[i] = models.Classification{
			ID:    uuid.New().String(),
			PetID: petID,
			Type:  strings.TrimSpace(c.Type),
			Value: strings.TrimSpace(c.Value),
		}
	}
	return out
}
