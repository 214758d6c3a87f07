package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListForPet handles GET /api/comments/pet/:petId
func (h *CommentHandler) ListForPet(c *gin.Context) {
	comments, err := h.services.Comment.ListApproved(c.Request.Context(), c.Param("petId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /api/comments. New comments wait for moderation.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var in models.CreateCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.log, bindError(err, "Invalid request body"))
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), currentUserID(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ApproveComment handles POST /api/comments/:id/approve
func (h *CommentHandler) ApproveComment(c *gin.Context) {
	comment, err := h.services.Comment.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recordAudit(c, h.services.Admin, models.AuditCommentApproved, "comment", comment.ID, map[string]any{
		"petId": comment.PetID,
	})
	c.JSON(http.StatusOK, comment)
}

// RejectComment handles POST /api/comments/:id/reject
func (h *CommentHandler) RejectComment(c *gin.Context) {
	comment, err := h.services.Comment.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recordAudit(c, h.services.Admin, models.AuditCommentRejected, "comment", comment.ID, map[string]any{
		"petId": comment.PetID,
	})
	c.JSON(http.StatusOK, comment)
}
