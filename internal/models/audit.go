package models

import (
	"time"
)

// Audit actions recorded after successful mutations
const (
	AuditPetCreated      = "pet.created"
	AuditPetUpdated      = "pet.updated"
	AuditPetDeleted      = "pet.deleted"
	AuditCommentApproved = "comment.approved"
	AuditCommentRejected = "comment.rejected"
	AuditMediaUploaded   = "media.uploaded"
	AuditMediaDeleted    = "media.deleted"
)

// AuditLog is an append-only record of an administrative action
type AuditLog struct {
	ID         string         `json:"id" db:"id"`
	UserID     *string        `json:"userId" db:"user_id"`
	Action     string         `json:"action" db:"action"`
	EntityType string         `json:"entityType" db:"entity_type"`
	EntityID   string         `json:"entityId" db:"entity_id"`
	Metadata   map[string]any `json:"metadata" db:"metadata"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`
}

// Stats is the response of GET /admin/stats
type Stats struct {
	Pets     int `json:"pets"`
	Users    int `json:"users"`
	Comments int `json:"comments"`
	Media    int `json:"media"`
}

// DefaultAuditLimit is how many audit entries the admin view returns
const DefaultAuditLimit = 100
