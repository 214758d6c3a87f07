package models

import (
	"time"
)

// Tag is a unique, named label shared between pets
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// TagWithPets is a tag plus its published pets
type TagWithPets struct {
	Tag
	Pets []Pet `json:"pets"`
}
