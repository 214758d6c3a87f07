package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/pkg/apperrors"
)

// Store is the shared in-memory state behind the mock repositories.
// Records are copied on the way in and out, like rows.
type Store struct {
	mu sync.Mutex

	Pets            map[string]*models.Pet
	Tags            map[string]*models.Tag
	PetTags         map[string][]string // pet ID -> tag IDs
	Classifications map[string][]models.Classification
	Media           map[string]*models.Media
	Comments        map[string]*models.Comment
	Users           map[string]*models.User
	Bookmarks       map[string]*models.Bookmark
	AuditLogs       []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		Pets:            make(map[string]*models.Pet),
		Tags:            make(map[string]*models.Tag),
		PetTags:         make(map[string][]string),
		Classifications: make(map[string][]models.Classification),
		Media:           make(map[string]*models.Media),
		Comments:        make(map[string]*models.Comment),
		Users:           make(map[string]*models.User),
		Bookmarks:       make(map[string]*models.Bookmark),
	}
}

// snapshot deep-copies the store so a failed transaction can be undone
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := NewStore()
	for k, v := range s.Pets {
		p := *v
		c.Pets[k] = &p
	}
	for k, v := range s.Tags {
		t := *v
		c.Tags[k] = &t
	}
	for k, v := range s.PetTags {
		c.PetTags[k] = append([]string(nil), v...)
	}
	for k, v := range s.Classifications {
		c.Classifications[k] = append([]models.Classification(nil), v...)
	}
	for k, v := range s.Media {
		m := *v
		c.Media[k] = &m
	}
	for k, v := range s.Comments {
		cm := *v
		c.Comments[k] = &cm
	}
	for k, v := range s.Users {
		u := *v
		c.Users[k] = &u
	}
	for k, v := range s.Bookmarks {
		b := *v
		c.Bookmarks[k] = &b
	}
	c.AuditLogs = append([]models.AuditLog(nil), s.AuditLogs...)
	return c
}

func (s *Store) restore(from *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Pets = from.Pets
	s.Tags = from.Tags
	s.PetTags = from.PetTags
	s.Classifications = from.Classifications
	s.Media = from.Media
	s.Comments = from.Comments
	s.Users = from.Users
	s.Bookmarks = from.Bookmarks
	s.AuditLogs = from.AuditLogs
}

// deletePetLocked mirrors ON DELETE CASCADE from pets
func (s *Store) deletePetLocked(id string) {
	delete(s.Pets, id)
	delete(s.PetTags, id)
	delete(s.Classifications, id)
	for k, m := range s.Media {
		if m.PetID != nil && *m.PetID == id {
			delete(s.Media, k)
		}
	}
	for k, c := range s.Comments {
		if c.PetID == id {
			delete(s.Comments, k)
		}
	}
	for k, b := range s.Bookmarks {
		if b.PetID == id {
			delete(s.Bookmarks, k)
		}
	}
}

// MockRepositories bundles every mock over one Store
type MockRepositories struct {
	Store          *Store
	Pet            *MockPetRepository
	Tag            *MockTagRepository
	Classification *MockClassificationRepository
	Media          *MockMediaRepository
	Comment        *MockCommentRepository
	User           *MockUserRepository
	Bookmark       *MockBookmarkRepository
	Audit          *MockAuditRepository
	Tx             *MockTxRunner
}

// NewMockRepositories creates mocks sharing a fresh store
func NewMockRepositories() *MockRepositories {
	store := NewStore()
	m := &MockRepositories{
		Store:          store,
		Pet:            &MockPetRepository{store: store},
		Tag:            &MockTagRepository{store: store},
		Classification: &MockClassificationRepository{store: store},
		Media:          &MockMediaRepository{store: store},
		Comment:        &MockCommentRepository{store: store},
		User:           &MockUserRepository{store: store},
		Bookmark:       &MockBookmarkRepository{store: store},
		Audit:          &MockAuditRepository{store: store},
	}
	m.Tx = &MockTxRunner{store: store}
	m.Tx.repos = m.Repositories()
	return m
}

// Repositories exposes the mocks through the repository interfaces
func (m *MockRepositories) Repositories() *repository.Repositories {
	repos := &repository.Repositories{
		Pet:            m.Pet,
		Tag:            m.Tag,
		Classification: m.Classification,
		Media:          m.Media,
		Comment:        m.Comment,
		User:           m.User,
		Bookmark:       m.Bookmark,
		Audit:          m.Audit,
	}
	if m.Tx != nil {
		repos.Tx = m.Tx
	}
	return repos
}

// MockTxRunner restores the store when fn fails
type MockTxRunner struct {
	store *Store
	repos *repository.Repositories
	Calls int
}

func (m *MockTxRunner) WithinTx(ctx context.Context, fn func(tx *repository.Repositories) error) error {
	m.Calls++
	before := m.store.snapshot()
	if err := fn(m.repos); err != nil {
		m.store.restore(before)
		return err
	}
	return nil
}

// MockPetRepository is a mock implementation of PetRepository
type MockPetRepository struct {
	store       *Store
	InsertError error
}

func (m *MockPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, p := range m.store.Pets {
		if p.Slug == pet.Slug {
			return apperrors.Conflict("a pet with this slug already exists")
		}
	}
	p := *pet
	p.Media, p.Tags, p.Classifications = nil, nil, nil
	m.store.Pets[pet.ID] = &p
	return nil
}

func (m *MockPetRepository) Update(ctx context.Context, pet *models.Pet) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for id, p := range m.store.Pets {
		if p.Slug == pet.Slug && id != pet.ID {
			return apperrors.Conflict("a pet with this slug already exists")
		}
	}
	if _, ok := m.store.Pets[pet.ID]; !ok {
		return nil
	}
	p := *pet
	p.Media, p.Tags, p.Classifications = nil, nil, nil
	m.store.Pets[pet.ID] = &p
	return nil
}

func (m *MockPetRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.Pets[id]; !ok {
		return false, nil
	}
	m.store.deletePetLocked(id)
	return true, nil
}

func (m *MockPetRepository) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if p, ok := m.store.Pets[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *MockPetRepository) GetBySlug(ctx context.Context, slug string) (*models.Pet, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, p := range m.store.Pets {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockPetRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Pet, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var out []*models.Pet
	for _, id := range ids {
		if p, ok := m.store.Pets[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPetRepository) List(ctx context.Context, filter models.PetFilter) ([]*models.Pet, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	matched := m.matchLocked(filter)
	sortPets(matched, filter.Sort)

	if filter.Limit > 0 {
		offset := filter.Offset()
		if offset >= len(matched) {
			return []*models.Pet{}, nil
		}
		end := offset + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}
	return matched, nil
}

func (m *MockPetRepository) Count(ctx context.Context, filter models.PetFilter) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.matchLocked(filter)), nil
}

func (m *MockPetRepository) Suggest(ctx context.Context, prefix string, limit int) ([]models.PetSuggestion, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	out := []models.PetSuggestion{}
	for _, p := range m.store.Pets {
		if p.Status == models.PetStatusPublished && hasPrefixFold(p.CommonName, prefix) {
			out = append(out, models.PetSuggestion{ID: p.ID, Slug: p.Slug, CommonName: p.CommonName})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommonName < out[j].CommonName })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockPetRepository) CountAll(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Pets), nil
}

func (m *MockPetRepository) matchLocked(f models.PetFilter) []*models.Pet {
	out := []*models.Pet{}
	for _, p := range m.store.Pets {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Q != "" && !containsFold(p.CommonName, f.Q) &&
			!containsFold(deref(p.ScientificName), f.Q) && !containsFold(deref(p.ShortIntro), f.Q) {
			continue
		}
		if f.Tag != "" && !m.hasTagLocked(p.ID, func(t *models.Tag) bool { return strings.EqualFold(t.Name, f.Tag) }) {
			continue
		}
		if f.TagID != "" && !m.hasTagLocked(p.ID, func(t *models.Tag) bool { return t.ID == f.TagID }) {
			continue
		}
		if f.Classification != "" && !m.hasClassificationLocked(p.ID, f.Classification) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (m *MockPetRepository) hasTagLocked(petID string, match func(*models.Tag) bool) bool {
	for _, tagID := range m.store.PetTags[petID] {
		if t, ok := m.store.Tags[tagID]; ok && match(t) {
			return true
		}
	}
	return false
}

func (m *MockPetRepository) hasClassificationLocked(petID, value string) bool {
	for _, c := range m.store.Classifications[petID] {
		if containsFold(c.Value, value) {
			return true
		}
	}
	return false
}

// sortPets orders descending by the sort key, published pets before unpublished, ties by ID
func sortPets(pets []*models.Pet, key string) {
	sort.SliceStable(pets, func(i, j int) bool {
		a, b := pets[i], pets[j]
		switch key {
		case models.SortCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case models.SortCommonName:
			if a.CommonName != b.CommonName {
				return a.CommonName > b.CommonName
			}
		default:
			switch {
			case a.PublishedAt == nil && b.PublishedAt != nil:
				return false
			case a.PublishedAt != nil && b.PublishedAt == nil:
				return true
			case a.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt):
				return a.PublishedAt.After(*b.PublishedAt)
			}
		}
		return a.ID > b.ID
	})
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	store    *Store
	SetError error
}

func (m *MockTagRepository) FindOrCreate(ctx context.Context, name, slug string) (*models.Tag, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, t := range m.store.Tags {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	for _, t := range m.store.Tags {
		if t.Slug == slug {
			return nil, apperrors.Conflict("a tag with this slug already exists")
		}
	}
	t := &models.Tag{ID: newID(), Name: name, Slug: slug, CreatedAt: now()}
	m.store.Tags[t.ID] = t
	cp := *t
	return &cp, nil
}

func (m *MockTagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, t := range m.store.Tags {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockTagRepository) ListAll(ctx context.Context) ([]models.Tag, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	tags := []models.Tag{}
	for _, t := range m.store.Tags {
		tags = append(tags, *t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (m *MockTagRepository) SetForPet(ctx context.Context, petID string, tagIDs []string) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.Pets[petID]; !ok {
		return apperrors.NotFound("referenced record not found")
	}
	seen := make(map[string]bool, len(tagIDs))
	ids := []string{}
	for _, id := range tagIDs {
		if _, ok := m.store.Tags[id]; !ok {
			return apperrors.NotFound("referenced record not found")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	m.store.PetTags[petID] = ids
	return nil
}

func (m *MockTagRepository) ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Tag, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	out := make(map[string][]models.Tag, len(petIDs))
	for _, petID := range petIDs {
		for _, tagID := range m.store.PetTags[petID] {
			if t, ok := m.store.Tags[tagID]; ok {
				out[petID] = append(out[petID], *t)
			}
		}
		sort.Slice(out[petID], func(i, j int) bool { return out[petID][i].Name < out[petID][j].Name })
	}
	return out, nil
}

// MockClassificationRepository is a mock implementation of ClassificationRepository
type MockClassificationRepository struct {
	store *Store
}

func (m *MockClassificationRepository) ReplaceForPet(ctx context.Context, petID string, classifications []models.Classification) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.Pets[petID]; !ok {
		return apperrors.NotFound("referenced record not found")
	}
	out := make([]models.Classification, 0, len(classifications))
	for _, c := range classifications {
		c.PetID = petID
		out = append(out, c)
	}
	m.store.Classifications[petID] = out
	return nil
}

func (m *MockClassificationRepository) ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Classification, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	out := make(map[string][]models.Classification, len(petIDs))
	for _, petID := range petIDs {
		if cs := m.store.Classifications[petID]; len(cs) > 0 {
			out[petID] = append([]models.Classification(nil), cs...)
		}
	}
	return out, nil
}

// MockMediaRepository is a mock implementation of MediaRepository
type MockMediaRepository struct {
	store       *Store
	InsertError error
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if media.PetID != nil {
		if _, ok := m.store.Pets[*media.PetID]; !ok {
			return apperrors.NotFound("referenced record not found")
		}
	}
	cp := *media
	m.store.Media[media.ID] = &cp
	return nil
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if media, ok := m.store.Media[id]; ok {
		cp := *media
		return &cp, nil
	}
	return nil, nil
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.Media[id]; !ok {
		return false, nil
	}
	delete(m.store.Media, id)
	return true, nil
}

func (m *MockMediaRepository) ListForPets(ctx context.Context, petIDs []string) (map[string][]models.Media, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	wanted := make(map[string]bool, len(petIDs))
	for _, id := range petIDs {
		wanted[id] = true
	}
	out := make(map[string][]models.Media, len(petIDs))
	for _, media := range m.store.Media {
		if media.PetID != nil && wanted[*media.PetID] {
			out[*media.PetID] = append(out[*media.PetID], *media)
		}
	}
	for _, list := range out {
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	}
	return out, nil
}

func (m *MockMediaRepository) CountAll(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Media), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store       *Store
	InsertError error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.Pets[comment.PetID]; !ok {
		return apperrors.NotFound("referenced record not found")
	}
	if _, ok := m.store.Users[comment.UserID]; !ok {
		return apperrors.NotFound("referenced record not found")
	}
	cp := *comment
	cp.User = nil
	m.store.Comments[comment.ID] = &cp
	return nil
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.Comments[id]
	if !ok {
		return nil, nil
	}
	c.Status = status
	c.UpdatedAt = now()
	cp := *c
	return &cp, nil
}

func (m *MockCommentRepository) ListByPet(ctx context.Context, petID string, status models.CommentStatus) ([]models.Comment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	out := []models.Comment{}
	for _, c := range m.store.Comments {
		if c.PetID != petID || c.Status != status {
			continue
		}
		cp := *c
		if u, ok := m.store.Users[c.UserID]; ok {
			cp.User = u.Summary()
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockCommentRepository) CountAll(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Comments), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store *Store
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, u := range m.store.Users {
		if u.Email == user.Email {
			return apperrors.Conflict("a user with this email already exists")
		}
	}
	cp := *user
	m.store.Users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if u, ok := m.store.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, u := range m.store.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Users), nil
}

// MockBookmarkRepository is a mock implementation of BookmarkRepository
type MockBookmarkRepository struct {
	store *Store
}

func (m *MockBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, b := range m.store.Bookmarks {
		if b.UserID == bookmark.UserID && b.PetID == bookmark.PetID {
			return apperrors.Conflict("Bookmark already exists")
		}
	}
	if _, ok := m.store.Pets[bookmark.PetID]; !ok {
		return apperrors.NotFound("referenced record not found")
	}
	if _, ok := m.store.Users[bookmark.UserID]; !ok {
		return apperrors.NotFound("referenced record not found")
	}
	cp := *bookmark
	cp.Pet = nil
	m.store.Bookmarks[bookmark.ID] = &cp
	return nil
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, userID, petID string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for id, b := range m.store.Bookmarks {
		if b.UserID == userID && b.PetID == petID {
			delete(m.store.Bookmarks, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	out := []models.Bookmark{}
	for _, b := range m.store.Bookmarks {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	store       *Store
	InsertError error
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	m.store.AuditLogs = append(m.store.AuditLogs, *entry)
	return nil
}

func (m *MockAuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	out := []models.AuditLog{}
	for i := len(m.store.AuditLogs) - 1; i >= 0 && len(out) < limit; i-- {
		entry := m.store.AuditLogs[i]
		if entry.UserID != nil {
			if u, ok := m.store.Users[*entry.UserID]; ok {
				entry.User = u.Summary()
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Entries returns every recorded audit entry in insertion order
func (m *MockAuditRepository) Entries() []models.AuditLog {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return append([]models.AuditLog(nil), m.store.AuditLogs...)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
