package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

// AdminHandler handles the dashboard endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.services.Admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAuditLogs handles GET /api/admin/audit?limit
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	entries, err := h.services.Admin.AuditLogs(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// recordAudit appends an entry for a mutation that already succeeded
func recordAudit(c *gin.Context, admin service.AdminService, action, entityType, entityID string, metadata map[string]any) {
	entry := models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if userID := currentUserID(c); userID != "" {
		entry.UserID = &userID
	}
	admin.Record(c.Request.Context(), entry)
}
