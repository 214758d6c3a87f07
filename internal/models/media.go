package models

import (
	"io"
	"strings"
	"time"
)

// MediaType classifies an uploaded file
type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeDocument MediaType = "DOCUMENT"
)

// MediaTypeFor derives the media type from a MIME type
func MediaTypeFor(mimeType string) MediaType {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return MediaTypeVideo
	default:
		return MediaTypeDocument
	}
}

// Media is a stored file, optionally attached to a pet
type Media struct {
	ID         string    `json:"id" db:"id"`
	PetID      *string   `json:"petId" db:"pet_id"`
	URL        string    `json:"url" db:"url"`
	StorageKey string    `json:"-" db:"storage_key"`
	Type       MediaType `json:"type" db:"type"`
	AltText    *string   `json:"altText" db:"alt_text"`
	Width      *int      `json:"width" db:"width"`
	Height     *int      `json:"height" db:"height"`
	MimeType   string    `json:"mimeType" db:"mime_type"`
	Size       int64     `json:"size" db:"size"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// UploadMediaInput describes one uploaded file
type UploadMediaInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	PetID       *string
	AltText     *string
}
