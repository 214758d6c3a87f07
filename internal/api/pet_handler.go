package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

// PetHandler handles catalog endpoints
type PetHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(services *service.Services, log zerolog.Logger) *PetHandler {
	return &PetHandler{
		services: services,
		log:      log.With().Str("handler", "pet").Logger(),
	}
}

// ListPets handles GET /api/pets?q&tag&classification&status&page&limit&sort
func (h *PetHandler) ListPets(c *gin.Context) {
	var query models.PetListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, h.log, bindError(err, "Invalid query parameters"))
		return
	}

	page, err := h.services.Catalog.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPet handles GET /api/pets/:slug
func (h *PetHandler) GetPet(c *gin.Context) {
	pet, err := h.services.Catalog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// CreatePet handles POST /api/pets
func (h *PetHandler) CreatePet(c *gin.Context) {
	var in models.CreatePetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.log, bindError(err, "Invalid request body"))
		return
	}

	pet, err := h.services.Catalog.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recordAudit(c, h.services.Admin, models.AuditPetCreated, "pet", pet.ID, map[string]any{
		"slug":   pet.Slug,
		"status": pet.Status,
	})
	c.JSON(http.StatusCreated, pet)
}

// UpdatePet handles PATCH /api/pets/:id
func (h *PetHandler) UpdatePet(c *gin.Context) {
	var in models.UpdatePetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.log, bindError(err, "Invalid request body"))
		return
	}

	pet, err := h.services.Catalog.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recordAudit(c, h.services.Admin, models.AuditPetUpdated, "pet", pet.ID, map[string]any{
		"slug":   pet.Slug,
		"status": pet.Status,
	})
	c.JSON(http.StatusOK, pet)
}

// DeletePet handles DELETE /api/pets/:id
func (h *PetHandler) DeletePet(c *gin.Context) {
	id := c.Param("id")
	msg, err := h.services.Catalog.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recordAudit(c, h.services.Admin, models.AuditPetDeleted, "pet", id, nil)
	c.JSON(http.StatusOK, msg)
}
