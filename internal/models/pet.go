package models

import (
	"time"
)

// PetStatus is the publication state of a pet record
type PetStatus string

const (
	PetStatusDraft     PetStatus = "DRAFT"
	PetStatusPublished PetStatus = "PUBLISHED"
	PetStatusArchived  PetStatus = "ARCHIVED"
)

// ValidPetStatuses defines allowed pet statuses
var ValidPetStatuses = map[PetStatus]bool{
	PetStatusDraft:     true,
	PetStatusPublished: true,
	PetStatusArchived:  true,
}

// Pet represents one species/breed record in the catalog
type Pet struct {
	ID             string     `json:"id" db:"id"`
	Slug           string     `json:"slug" db:"slug"`
	CommonName     string     `json:"commonName" db:"common_name"`
	ScientificName *string    `json:"scientificName" db:"scientific_name"`
	ShortIntro     *string    `json:"shortIntro" db:"short_intro"`
	Background     *string    `json:"background" db:"background"`
	History        *string    `json:"history" db:"history"`
	Diet           *string    `json:"diet" db:"diet"`
	OwnershipGuide *string    `json:"ownershipGuide" db:"ownership_guide"`
	Status         PetStatus  `json:"status" db:"status"`
	PublishedAt    *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	Media           []Media          `json:"media" db:"-"`
	Tags            []Tag            `json:"tags" db:"-"`
	Classifications []Classification `json:"classifications" db:"-"`
}

// PetDetail is a pet with its approved comments, newest first
type PetDetail struct {
	Pet
	Comments []Comment `json:"comments"`
}

// PetSuggestion is the minimal projection returned by autocomplete
type PetSuggestion struct {
	ID         string `json:"id" db:"id"`
	Slug       string `json:"slug" db:"slug"`
	CommonName string `json:"commonName" db:"common_name"`
}

// Classification is a typed fact attached to a pet, e.g. Size=Large
type Classification struct {
	ID    string `json:"id" db:"id"`
	PetID string `json:"petId" db:"pet_id"`
	Type  string `json:"type" db:"type"`
	Value string `json:"value" db:"value"`
}

// ClassificationInput is one {type, value} pair in a create/update body
type ClassificationInput struct {
	Type  string `json:"type" validate:"required,notblank,max=100"`
	Value string `json:"value" validate:"required,notblank,max=500"`
}

// CreatePetInput is the body of POST /pets
type CreatePetInput struct {
	Slug            string                `json:"slug" validate:"required,max=200,slug"`
	CommonName      string                `json:"commonName" validate:"required,notblank,max=200"`
	ScientificName  *string               `json:"scientificName" validate:"omitempty,max=200"`
	ShortIntro      *string               `json:"shortIntro" validate:"omitempty,max=2000"`
	Background      *string               `json:"background"`
	History         *string               `json:"history"`
	Diet            *string               `json:"diet"`
	OwnershipGuide  *string               `json:"ownershipGuide"`
	Tags            []string              `json:"tags" validate:"omitempty,dive,required,max=100"`
	Classifications []ClassificationInput `json:"classifications" validate:"omitempty,dive"`
	Status          PetStatus             `json:"status" validate:"omitempty,petstatus"`
}

// UpdatePetInput is the body of PATCH /pets/:id. Nil fields are left untouched;
// a non-nil Tags or Classifications replaces the whole set, even when empty.
type UpdatePetInput struct {
	Slug            *string                `json:"slug" validate:"omitempty,max=200,slug"`
	CommonName      *string                `json:"commonName" validate:"omitempty,notblank,max=200"`
	ScientificName  *string                `json:"scientificName" validate:"omitempty,max=200"`
	ShortIntro      *string                `json:"shortIntro" validate:"omitempty,max=2000"`
	Background      *string                `json:"background"`
	History         *string                `json:"history"`
	Diet            *string                `json:"diet"`
	OwnershipGuide  *string                `json:"ownershipGuide"`
	Tags            *[]string              `json:"tags" validate:"omitempty,dive,required,max=100"`
	Classifications *[]ClassificationInput `json:"classifications" validate:"omitempty,dive"`
	Status          *PetStatus             `json:"status" validate:"omitempty,petstatus"`
}

// Sort fields accepted by the pet listing
const (
	SortPublishedAt = "publishedAt"
	SortCreatedAt   = "createdAt"
	SortCommonName  = "commonName"
)

// Listing defaults and bounds
const (
	DefaultPage     = 1
	DefaultPetLimit = 20
	MaxPetLimit     = 100
)

// PetListQuery is the raw query of GET /pets; nil means "use the default"
type PetListQuery struct {
	Q              string     `form:"q" json:"q"`
	Tag            string     `form:"tag" json:"tag"`
	Classification string     `form:"classification" json:"classification"`
	Status         *PetStatus `form:"status" json:"status" validate:"omitempty,petstatus"`
	Page           *int       `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit          *int       `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Sort           *string    `form:"sort" json:"sort" validate:"omitempty,oneof=publishedAt createdAt commonName"`
}

// Filter resolves defaults into a concrete store filter
func (q PetListQuery) Filter() PetFilter {
	f := PetFilter{
		Q:              q.Q,
		Tag:            q.Tag,
		Classification: q.Classification,
		Status:         PetStatusPublished,
		Page:           DefaultPage,
		Limit:          DefaultPetLimit,
		Sort:           SortPublishedAt,
	}
	if q.Status != nil {
		f.Status = *q.Status
	}
	if q.Page != nil {
		f.Page = *q.Page
	}
	if q.Limit != nil {
		f.Limit = *q.Limit
	}
	if q.Sort != nil {
		f.Sort = *q.Sort
	}
	return f
}

// PetFilter is the store-level filter. Limit 0 means unbounded.
type PetFilter struct {
	Q              string
	Tag            string
	TagID          string
	Classification string
	Status         PetStatus
	Page           int
	Limit          int
	Sort           string
}

// Offset returns the number of rows to skip
func (f PetFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// PageMeta describes a page of results
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes totalPages = ceil(total/limit)
func NewPageMeta(total, page, limit int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// PetPage is the response of GET /pets
type PetPage struct {
	Data []Pet    `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Message is a plain confirmation result
type Message struct {
	Message string `json:"message"`
}
