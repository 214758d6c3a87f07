package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pet-catalog-api/internal/config"
	"github.com/rs/zerolog"
)

// Store is implemented by every media backend
type Store interface {
	// Put writes body under key and returns its public URL
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL, log)
	case "s3":
		return NewS3Store(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// cleanKey rejects keys that could escape the bucket or upload directory
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != key || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return cleaned, nil
}
