package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

// TagHandler handles the tag directory
type TagHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(services *service.Services, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		services: services,
		log:      log.With().Str("handler", "tag").Logger(),
	}
}

// ListTags handles GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.services.Tag.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag handles GET /api/tags/:slug. An unknown slug answers 200 with null.
func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.services.Tag.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if tag == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, tag)
}
