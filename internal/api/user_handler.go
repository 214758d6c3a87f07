package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/pet-catalog-api/internal/validation"
	"github.com/rs/zerolog"
)

// UserHandler handles the caller's profile and bookmarks
type UserHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services:  services,
		validator: v,
		log:       log.With().Str("handler", "user").Logger(),
	}
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	profile, err := h.services.User.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddBookmark handles POST /api/users/me/bookmarks {petId}
func (h *UserHandler) AddBookmark(c *gin.Context) {
	var in models.AddBookmarkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.log, bindError(err, "Invalid request body"))
		return
	}
	if err := h.validator.Struct(in); err != nil {
		respondError(c, h.log, err)
		return
	}

	bookmark, err := h.services.User.AddBookmark(c.Request.Context(), currentUserID(c), in.PetID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// RemoveBookmark handles DELETE /api/users/me/bookmarks/:petId
func (h *UserHandler) RemoveBookmark(c *gin.Context) {
	msg, err := h.services.User.RemoveBookmark(c.Request.Context(), currentUserID(c), c.Param("petId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
