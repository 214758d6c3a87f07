package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

const (
	defaultSearchLimit     = 10
	defaultSuggestionLimit = 5
	maxSearchLimit         = 100
	minSuggestionLength    = 2
)

// searchService is the concrete implementation of SearchService
type searchService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newSearchService creates a new SearchService
func newSearchService(repos *repository.Repositories, log zerolog.Logger) *searchService {
	return &searchService{
		repos: repos,
		log:   log.With().Str("service", "search").Logger(),
	}
}

// Search matches published pets by name, scientific name or intro, newest published first.
// A blank query returns nothing without touching the store.
func (s *searchService) Search(ctx context.Context, query string, limit int) ([]models.Pet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Pet{}, nil
	}

	pets, err := s.repos.Pet.List(ctx, models.PetFilter{
		Q:      query,
		Status: models.PetStatusPublished,
		Page:   1,
		Limit:  clampLimit(limit, defaultSearchLimit),
		Sort:   models.SortPublishedAt,
	})
	if err != nil {
		return nil, err
	}
	if err := loadRelations(ctx, s.repos, pets); err != nil {
		return nil, err
	}

	s.log.Debug().Str("q", query).Int("results", len(pets)).Msg("Search executed")
	return flatten(pets), nil
}

// Suggestions returns published pets whose common name starts with query.
// Queries shorter than two characters return nothing without touching the store.
func (s *searchService) Suggestions(ctx context.Context, query string, limit int) ([]models.PetSuggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestionLength {
		return []models.PetSuggestion{}, nil
	}

	suggestions, err := s.repos.Pet.Suggest(ctx, query, clampLimit(limit, defaultSuggestionLimit))
	if err != nil {
		return nil, err
	}
	return nonNil(suggestions), nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}
