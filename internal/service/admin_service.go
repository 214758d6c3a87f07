package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/rs/zerolog"
)

// adminService is the concrete implementation of AdminService
type adminService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newAdminService creates a new AdminService
func newAdminService(repos *repository.Repositories, log zerolog.Logger) *adminService {
	return &adminService{
		repos: repos,
		log:   log.With().Str("service", "admin").Logger(),
	}
}

// Stats returns entity counts for the dashboard
func (s *adminService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	var err error

	if stats.Pets, err = s.repos.Pet.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Users, err = s.repos.User.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.repos.Comment.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Media, err = s.repos.Media.CountAll(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AuditLogs returns the newest entries, at most limit
func (s *adminService) AuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > models.DefaultAuditLimit {
		limit = models.DefaultAuditLimit
	}
	entries, err := s.repos.Audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

// Record appends an audit entry. A failure here never fails the caller.
func (s *adminService) Record(ctx context.Context, entry models.AuditLog) {
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}

	if err := s.repos.Audit.Create(ctx, &entry); err != nil {
		s.log.Error().
			Err(err).
			Str("action", entry.Action).
			Str("entity_id", entry.EntityID).
			Msg("Failed to record audit log")
	}
}
