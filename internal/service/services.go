package service

import (
	"context"
	"io"

	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/rs/zerolog"
)

// CatalogService defines the interface for pet lifecycle operations
type CatalogService interface {
	Create(ctx context.Context, in *models.CreatePetInput) (*models.Pet, error)
	List(ctx context.Context, query models.PetListQuery) (*models.PetPage, error)
	GetBySlug(ctx context.Context, slug string) (*models.PetDetail, error)
	Update(ctx context.Context, id string, in *models.UpdatePetInput) (*models.Pet, error)
	Delete(ctx context.Context, id string) (*models.Message, error)
}

// CommentService defines the interface for comment moderation
type CommentService interface {
	Create(ctx context.Context, userID string, in *models.CreateCommentInput) (*models.Comment, error)
	ListApproved(ctx context.Context, petID string) ([]models.Comment, error)
	Approve(ctx context.Context, id string) (*models.Comment, error)
	Reject(ctx context.Context, id string) (*models.Comment, error)
}

// TagService defines the interface for the tag directory
type TagService interface {
	ListAll(ctx context.Context) ([]models.Tag, error)
	// GetBySlug returns nil without an error when no tag has the slug
	GetBySlug(ctx context.Context, slug string) (*models.TagWithPets, error)
}

// SearchService defines the interface for search and autocomplete
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]models.Pet, error)
	Suggestions(ctx context.Context, query string, limit int) ([]models.PetSuggestion, error)
}

// UserService defines the interface for profiles and bookmarks
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	AddBookmark(ctx context.Context, userID, petID string) (*models.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, petID string) (*models.Message, error)
}

// MediaService defines the interface for media uploads
type MediaService interface {
	Upload(ctx context.Context, in *models.UploadMediaInput) (*models.Media, error)
	Delete(ctx context.Context, id string) (*models.Message, error)
}

// AdminService defines the interface for the admin dashboard
type AdminService interface {
	Stats(ctx context.Context) (*models.Stats, error)
	AuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)
	// Record appends an audit entry; failures are logged, never returned
	Record(ctx context.Context, entry models.AuditLog)
}

// ObjectStore persists uploaded media bytes and returns their public URL
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// TagCache caches the full tag listing
type TagCache interface {
	GetTags(ctx context.Context) ([]models.Tag, bool, error)
	SetTags(ctx context.Context, tags []models.Tag) error
	InvalidateTags(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Catalog CatalogService
	Comment CommentService
	Tag     TagService
	Search  SearchService
	User    UserService
	Media   MediaService
	Admin   AdminService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, store ObjectStore, tags TagCache, log zerolog.Logger) *Services {
	v := validation.NewValidator()

	return &Services{
		Catalog: newCatalogService(repos, v, tags, log),
		Comment: newCommentService(repos, v, log),
		Tag:     newTagService(repos, tags, log),
		Search:  newSearchService(repos, log),
		User:    newUserService(repos, log),
		Media:   newMediaService(repos, store, cfg.Storage.MaxUploadSize, log),
		Admin:   newAdminService(repos, log),
	}
}
