package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/service"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/rs/zerolog"
)

// SearchHandler handles search and autocomplete
type SearchHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// Search handles GET /api/search?q&limit
func (h *SearchHandler) Search(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	pets, err := h.services.Search.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// Suggestions handles GET /api/search/suggestions?q&limit
func (h *SearchHandler) Suggestions(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	suggestions, err := h.services.Search.Suggestions(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// queryLimit reads ?limit. Absent means 0, which the services replace with their default.
func queryLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation("limit must be an integer", []validation.ValidationError{
			{Field: "limit", Message: "limit must be an integer", Value: raw},
		})
	}
	return limit, nil
}
