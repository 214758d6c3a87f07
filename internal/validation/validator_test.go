package validation

import (
	"strings"
	"testing"

	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected an apperrors.Error, got %v", err)
	require.Equal(t, apperrors.KindValidation, appErr.Kind)

	details, ok := appErr.Details.([]ValidationError)
	require.True(t, ok)
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	return fields
}

func TestValidatePetInput(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		input      *models.CreatePetInput
		wantFields []string
	}{
		{
			name: "valid pet with tags and classifications",
			input: &models.CreatePetInput{
				Slug:            "siberian-husky",
				CommonName:      "Siberian Husky",
				Tags:            []string{"Dog", "Working"},
				Classifications: []models.ClassificationInput{{Type: "Size", Value: "Large"}},
				Status:          models.PetStatusPublished,
			},
		},
		{
			name:       "missing slug and name",
			input:      &models.CreatePetInput{},
			wantFields: []string{"slug", "commonName"},
		},
		{
			name: "whitespace-only name and classification",
			input: &models.CreatePetInput{
				Slug:            "gecko",
				CommonName:      "   ",
				Classifications: []models.ClassificationInput{{Type: " ", Value: "\t"}},
			},
			wantFields: []string{"commonName", "classifications[0].type", "classifications[0].value"},
		},
		{
			name:       "slug not kebab-case",
			input:      &models.CreatePetInput{Slug: "Siberian Husky", CommonName: "Siberian Husky"},
			wantFields: []string{"slug"},
		},
		{
			name:       "unknown status",
			input:      &models.CreatePetInput{Slug: "husky", CommonName: "Husky", Status: "LIVE"},
			wantFields: []string{"status"},
		},
		{
			name:       "empty tag name",
			input:      &models.CreatePetInput{Slug: "husky", CommonName: "Husky", Tags: []string{"Dog", ""}},
			wantFields: []string{"tags[1]"},
		},
		{
			name: "classification without value",
			input: &models.CreatePetInput{
				Slug: "husky", CommonName: "Husky",
				Classifications: []models.ClassificationInput{{Type: "Size"}},
			},
			wantFields: []string{"classifications[0].value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePetInput(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestValidatePetUpdate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidatePetUpdate(&models.UpdatePetInput{}))

	empty := []string{}
	assert.NoError(t, v.ValidatePetUpdate(&models.UpdatePetInput{Tags: &empty}))

	badTags := []string{"Cat", ""}
	assert.ElementsMatch(t, []string{"tags[1]"}, fieldsOf(t, v.ValidatePetUpdate(&models.UpdatePetInput{Tags: &badTags})))

	badStatus := models.PetStatus("GONE")
	assert.ElementsMatch(t, []string{"status"}, fieldsOf(t, v.ValidatePetUpdate(&models.UpdatePetInput{Status: &badStatus})))

	assert.ElementsMatch(t, []string{"slug"}, fieldsOf(t, v.ValidatePetUpdate(&models.UpdatePetInput{Slug: strPtr("-bad-")})))

	for _, name := range []string{"", "  "} {
		assert.ElementsMatch(t, []string{"commonName"}, fieldsOf(t, v.ValidatePetUpdate(&models.UpdatePetInput{CommonName: strPtr(name)})))
	}

	err := v.ValidatePetUpdate(nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestPetListQuery(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(models.PetListQuery{}))
	assert.NoError(t, v.Struct(models.PetListQuery{Page: intPtr(3), Limit: intPtr(100)}))

	assert.ElementsMatch(t, []string{"page"}, fieldsOf(t, v.Struct(models.PetListQuery{Page: intPtr(0)})))
	assert.ElementsMatch(t, []string{"limit"}, fieldsOf(t, v.Struct(models.PetListQuery{Limit: intPtr(101)})))
	assert.ElementsMatch(t, []string{"limit"}, fieldsOf(t, v.Struct(models.PetListQuery{Limit: intPtr(0)})))
	assert.ElementsMatch(t, []string{"sort"}, fieldsOf(t, v.Struct(models.PetListQuery{Sort: strPtr("name")})))
}

func TestValidateComment(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateComment(&models.CreateCommentInput{PetID: "p1", Content: "Lovely dog"}))
	assert.ElementsMatch(t, []string{"content"}, fieldsOf(t, v.ValidateComment(&models.CreateCommentInput{PetID: "p1", Content: "   "})))
	assert.ElementsMatch(t, []string{"petId", "content"}, fieldsOf(t, v.ValidateComment(&models.CreateCommentInput{})))

	long := strings.Repeat("a", 5001)
	assert.ElementsMatch(t, []string{"content"}, fieldsOf(t, v.ValidateComment(&models.CreateCommentInput{PetID: "p1", Content: long})))
}

func TestErrorMessages(t *testing.T) {
	v := NewValidator()

	err := v.Struct(models.PetListQuery{Sort: strPtr("name")})
	appErr, _ := apperrors.As(err)
	assert.Equal(t, "sort must be one of: publishedAt, createdAt, commonName", appErr.Message)

	err = v.ValidatePetInput(&models.CreatePetInput{})
	appErr, _ = apperrors.As(err)
	assert.Equal(t, "slug is required (and 1 more)", appErr.Message)
}

func TestIsSlugAndUUID(t *testing.T) {
	assert.True(t, IsSlug("african-grey-parrot"))
	assert.True(t, IsSlug("cat2"))
	assert.False(t, IsSlug("African"))
	assert.False(t, IsSlug("double--hyphen"))
	assert.False(t, IsSlug(""))

	assert.True(t, IsUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsUUID("not-a-uuid"))
}
