package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/mocks"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1024

type fixture struct {
	ctx      context.Context
	mocks    *mocks.MockRepositories
	store    *mocks.MemoryObjectStore
	tagCache *mocks.MemoryTagCache
	svc      *service.Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	m := mocks.NewMockRepositories()
	store := mocks.NewMemoryObjectStore()
	tagCache := mocks.NewMemoryTagCache()
	cfg := &config.Config{Storage: config.StorageConfig{MaxUploadSize: testMaxUpload}}

	return &fixture{
		ctx:      context.Background(),
		mocks:    m,
		store:    store,
		tagCache: tagCache,
		svc:      service.NewServices(m.Repositories(), cfg, store, tagCache, zerolog.Nop()),
	}
}

func (f *fixture) createPet(t *testing.T, in models.CreatePetInput) *models.Pet {
	t.Helper()
	pet, err := f.svc.Catalog.Create(f.ctx, &in)
	require.NoError(t, err)
	return pet
}

func (f *fixture) createUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()
	name := "Test " + string(role)
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$secret-hash-value",
		Name:         &name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, f.mocks.User.Create(f.ctx, user))
	return user
}

// seedPet writes a pet straight into the store, bypassing the service
func (f *fixture) seedPet(t *testing.T, slug string, status models.PetStatus, publishedAt *time.Time) *models.Pet {
	t.Helper()
	now := time.Now().UTC()
	pet := &models.Pet{
		ID:          uuid.New().String(),
		Slug:        slug,
		CommonName:  slug,
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.mocks.Pet.Create(f.ctx, pet))
	return pet
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
