package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
)

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

// MemoryObjectStore keeps uploaded objects in a map
type MemoryObjectStore struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	PutError    error
	DeleteError error
	Deleted     []string
}

func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{Objects: make(map[string][]byte)}
}

func (s *MemoryObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if s.PutError != nil {
		return "", s.PutError
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = buf.Bytes()
	return "/uploads/" + key, nil
}

func (s *MemoryObjectStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, key)
	if s.DeleteError != nil {
		return s.DeleteError
	}
	delete(s.Objects, key)
	return nil
}

// MemoryTagCache is a tag cache with call counters
type MemoryTagCache struct {
	mu            sync.Mutex
	tags          []models.Tag
	cached        bool
	GetError      error
	Hits          int
	Misses        int
	Invalidations int
}

func NewMemoryTagCache() *MemoryTagCache {
	return &MemoryTagCache{}
}

func (c *MemoryTagCache) GetTags(ctx context.Context) ([]models.Tag, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetError != nil {
		return nil, false, c.GetError
	}
	if !c.cached {
		c.Misses++
		return nil, false, nil
	}
	c.Hits++
	return append([]models.Tag{}, c.tags...), true, nil
}

func (c *MemoryTagCache) SetTags(ctx context.Context, tags []models.Tag) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = append([]models.Tag{}, tags...)
	c.cached = true
	return nil
}

func (c *MemoryTagCache) InvalidateTags(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = nil
	c.cached = false
	c.Invalidations++
	return nil
}
