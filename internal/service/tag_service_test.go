package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pet-catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_ListAllEmpty(t *testing.T) {
	f := newFixture(t)

	tags, err := f.svc.Tag.ListAll(f.ctx)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestTagService_ListAllCached(t *testing.T) {
	f := newFixture(t)
	f.createPet(t, models.CreatePetInput{Slug: "canary", CommonName: "Canary", Tags: []string{"Bird", "Aviary"}})

	first, err := f.svc.Tag.ListAll(f.ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Aviary", first[0].Name, "alphabetical")

	second, err := f.svc.Tag.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.tagCache.Hits)

	f.createPet(t, models.CreatePetInput{Slug: "finch", CommonName: "Finch", Tags: []string{"Songbird"}})
	third, err := f.svc.Tag.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, third, 3)
}

func TestTagService_ListAllCacheFailureFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.createPet(t, models.CreatePetInput{Slug: "lovebird", CommonName: "Lovebird", Tags: []string{"Bird"}})
	f.tagCache.GetError = errors.New("redis: connection refused")

	tags, err := f.svc.Tag.ListAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagService_GetBySlug(t *testing.T) {
	f := newFixture(t)
	older := time.Now().Add(-time.Hour)
	f.createPet(t, models.CreatePetInput{Slug: "tabby", CommonName: "Tabby", Tags: []string{"Cat"}, Status: models.PetStatusPublished})
	f.createPet(t, models.CreatePetInput{Slug: "sphynx", CommonName: "Sphynx", Tags: []string{"Cat"}})
	siamese := f.createPet(t, models.CreatePetInput{Slug: "siamese", CommonName: "Siamese", Tags: []string{"Cat"}, Status: models.PetStatusPublished})

	// Push siamese back in time so tabby is newest
	stored := f.mocks.Store.Pets[siamese.ID]
	stored.PublishedAt = &older

	tag, err := f.svc.Tag.GetBySlug(f.ctx, "cat")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "Cat", tag.Name)
	require.Len(t, tag.Pets, 2, "drafts are excluded")
	assert.Equal(t, "tabby", tag.Pets[0].Slug)
	assert.Len(t, tag.Pets[0].Tags, 1)
	assert.NotNil(t, tag.Pets[0].Media)
}

func TestTagService_GetBySlugMiss(t *testing.T) {
	f := newFixture(t)

	tag, err := f.svc.Tag.GetBySlug(f.ctx, "unicorn")
	assert.NoError(t, err)
	assert.Nil(t, tag)
}
