package repository

import (
	"context"
	"database/sql"

	"github.com/pet-catalog-api/internal/database"
	"github.com/pet-catalog-api/internal/models"
)

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Pet, error)
	GetBySlug(ctx context.Context, slug string) (*models.Pet, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Pet, error)
	List(ctx context.Context, filter models.PetFilter) ([]*models.Pet, error)
	Count(ctx context.Context, filter models.PetFilter) (int, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]models.PetSuggestion, error)
	CountAll(ctx context.Context) (int, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	FindOrCreate(ctx context.Context, name, slug string) (*models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	ListAll(ctx context.Context) ([]models.Tag, error)
	SetForPet(ctx context.Context, petID string, tagIDs []string) error
	ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Tag, error)
}

// ClassificationRepository defines the interface for classification data operations
type ClassificationRepository interface {
	ReplaceForPet(ctx context.Context, petID string, classifications []models.Classification) error
	ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Classification, error)
}

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Media, error)
	CountAll(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error)
	ListByPet(ctx context.Context, petID string, status models.CommentStatus) ([]models.Comment, error)
	CountAll(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CountAll(ctx context.Context) (int, error)
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, userID, petID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
}

// AuditRepository defines the interface for audit log operations
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// TxRunner runs fn against repositories bound to a single transaction
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *Repositories) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Pet            PetRepository
	Tag            TagRepository
	Classification ClassificationRepository
	Media          MediaRepository
	Comment        CommentRepository
	User           UserRepository
	Bookmark       BookmarkRepository
	Audit          AuditRepository
	Tx             TxRunner
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	repos := newRepositories(db)
	repos.Tx = &sqlTxRunner{db: db}
	return repos
}

func newRepositories(q Querier) *Repositories {
	return &Repositories{
		Pet:            NewPetRepo(q),
		Tag:            NewTagRepo(q),
		Classification: NewClassificationRepo(q),
		Media:          NewMediaRepo(q),
		Comment:        NewCommentRepo(q),
		User:           NewUserRepo(q),
		Bookmark:       NewBookmarkRepo(q),
		Audit:          NewAuditRepo(q),
	}
}

// sqlTxRunner binds a fresh set of repositories to one *sql.Tx
type sqlTxRunner struct {
	db *database.DB
}

func (r *sqlTxRunner) WithinTx(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		repos := newRepositories(tx)
		repos.Tx = nestedTxRunner{repos: repos}
		return fn(repos)
	})
}

// nestedTxRunner reuses the outer transaction
type nestedTxRunner struct {
	repos *Repositories
}

func (r nestedTxRunner) WithinTx(ctx context.Context, fn func(tx *Repositories) error) error {
	return fn(r.repos)
}
