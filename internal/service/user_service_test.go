package service_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_BookmarkUniqueness(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "collector@example.com", models.RoleUser)
	pet := f.createPet(t, models.CreatePetInput{Slug: "chinchilla", CommonName: "Chinchilla", Tags: []string{"Rodent"}})

	bookmark, err := f.svc.User.AddBookmark(f.ctx, user.ID, pet.ID)
	require.NoError(t, err)
	require.NotNil(t, bookmark.Pet)
	assert.Equal(t, "chinchilla", bookmark.Pet.Slug)
	assert.Len(t, bookmark.Pet.Tags, 1)

	_, err = f.svc.User.AddBookmark(f.ctx, user.ID, pet.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Len(t, f.mocks.Store.Bookmarks, 1)

	msg, err := f.svc.User.RemoveBookmark(f.ctx, user.ID, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bookmark removed", msg.Message)

	_, err = f.svc.User.RemoveBookmark(f.ctx, user.ID, pet.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.svc.User.AddBookmark(f.ctx, user.ID, pet.ID)
	assert.NoError(t, err)
}

func TestUserService_AddBookmarkMissingPet(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "lost@example.com", models.RoleUser)

	_, err := f.svc.User.AddBookmark(f.ctx, user.ID, "9a0c2d9e-2222-4000-8000-000000000000")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.svc.User.AddBookmark(f.ctx, user.ID, "not-a-uuid")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUserService_GetProfile(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "profile@example.com", models.RoleEditor)
	first := f.createPet(t, models.CreatePetInput{Slug: "guinea-pig", CommonName: "Guinea Pig"})
	second := f.createPet(t, models.CreatePetInput{Slug: "degu", CommonName: "Degu"})

	_, err := f.svc.User.AddBookmark(f.ctx, user.ID, first.ID)
	require.NoError(t, err)
	_, err = f.svc.User.AddBookmark(f.ctx, user.ID, second.ID)
	require.NoError(t, err)

	profile, err := f.svc.User.GetProfile(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, models.RoleEditor, profile.Role)
	require.Len(t, profile.Bookmarks, 2)
	for _, b := range profile.Bookmarks {
		require.NotNil(t, b.Pet)
		assert.NotNil(t, b.Pet.Media)
	}

	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "passwordHash")
	assert.NotContains(t, string(raw), user.PasswordHash)

	_, err = f.svc.User.GetProfile(f.ctx, "3c7e1c2a-3333-4000-8000-000000000000")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUserService_SafeProjectionInComments(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "private@example.com", models.RoleUser)
	pet := f.createPet(t, models.CreatePetInput{Slug: "tortoise", CommonName: "Tortoise"})

	comment, err := f.svc.Comment.Create(f.ctx, user.ID, &models.CreateCommentInput{PetID: pet.ID, Content: "Slow and steady"})
	require.NoError(t, err)
	_, err = f.svc.Comment.Approve(f.ctx, comment.ID)
	require.NoError(t, err)

	comments, err := f.svc.Comment.ListApproved(f.ctx, pet.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(comments)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "passwordHash")
	assert.NotContains(t, string(raw), user.PasswordHash)
	assert.Contains(t, string(raw), user.Email)
}
