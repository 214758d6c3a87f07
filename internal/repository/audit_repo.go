package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pet-catalog-api/internal/models"
)

// auditRepo is the concrete implementation of AuditRepository
type auditRepo struct {
	db Querier
}

// NewAuditRepo creates a new audit log repository
func NewAuditRepo(db Querier) AuditRepository {
	return &auditRepo{db: db}
}

// Create appends an audit entry
func (r *auditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return translate(err, "encode audit metadata")
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, raw, entry.CreatedAt,
	)
	return translate(err, "create audit log")
}

// ListRecent returns the newest entries with their user, if it still exists
func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT a.id, a.user_id, a.action, a.entity_type, a.entity_id, a.metadata, a.created_at,
			u.id, u.name, u.email
		FROM audit_logs a LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, translate(err, "list audit logs")
	}
	defer rows.Close()

	entries := []models.AuditLog{}
	for rows.Next() {
		var entry models.AuditLog
		var raw []byte
		var userID, userName, userEmail sql.NullString

		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType, &entry.EntityID, &raw, &entry.CreatedAt,
			&userID, &userName, &userEmail,
		)
		if err != nil {
			return nil, translate(err, "list audit logs")
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &entry.Metadata); err != nil {
				return nil, translate(err, "decode audit metadata")
			}
		}
		if userID.Valid {
			entry.User = &models.UserSummary{ID: userID.String, Email: userEmail.String}
			if userName.Valid {
				entry.User.Name = &userName.String
			}
		}
		entries = append(entries, entry)
	}
	return entries, translate(rows.Err(), "list audit logs")
}
