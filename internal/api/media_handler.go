package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/service"
	"github.com/pet-catalog-api/pkg/apperrors"
	"github.com/rs/zerolog"
)

// multipartOverhead leaves room for boundaries and the text fields next to the file
const multipartOverhead = 1 << 20

// MediaHandler handles media uploads
type MediaHandler struct {
	services      *service.Services
	maxUploadSize int64
	log           zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(services *service.Services, maxUploadSize int64, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		services:      services,
		maxUploadSize: maxUploadSize,
		log:           log.With().Str("handler", "media").Logger(),
	}
}

// UploadMedia handles POST /api/media (multipart: file, petId, altText)
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondError(c, h.log, apperrors.Validation("Uploaded file is too large", nil))
			return
		}
		respondError(c, h.log, apperrors.Validation("No file uploaded", nil))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, apperrors.Internal(err, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	in := &models.UploadMediaInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		PetID:       optionalForm(c, "petId"),
		AltText:     optionalForm(c, "altText"),
	}

	media, err := h.services.Media.Upload(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("media_id", media.ID).
		Str("file", header.Filename).
		Int64("size_bytes", media.Size).
		Msg("Media uploaded")

	recordAudit(c, h.services.Admin, models.AuditMediaUploaded, "media", media.ID, map[string]any{
		"url":      media.URL,
		"mimeType": media.MimeType,
		"size":     media.Size,
	})
	c.JSON(http.StatusCreated, media)
}

// DeleteMedia handles DELETE /api/media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id := c.Param("id")
	msg, err := h.services.Media.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recordAudit(c, h.services.Admin, models.AuditMediaDeleted, "media", id, nil)
	c.JSON(http.StatusOK, msg)
}

func optionalForm(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.PostForm(key))
	if v == "" {
		return nil
	}
	return &v
}
