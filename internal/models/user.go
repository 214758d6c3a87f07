package models

import (
	"time"
)

// UserRole grants capabilities checked by the transport layer
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleEditor UserRole = "EDITOR"
	RoleUser   UserRole = "USER"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleEditor: true,
	RoleUser:   true,
}

// User represents an account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         *string   `json:"name" db:"name"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the safe projection embedded in comments and audit entries
type UserSummary struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

// Summary projects a user onto its safe fields
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Profile is the response of GET /users/me
type Profile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      *string    `json:"name"`
	Role      UserRole   `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// Bookmark is a (user, pet) pair, unique per user and pet
type Bookmark struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PetID     string    `json:"petId" db:"pet_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Pet *Pet `json:"pet,omitempty" db:"-"`
}

// AddBookmarkInput is the body of POST /users/me/bookmarks
type AddBookmarkInput struct {
	PetID string `json:"petId" validate:"required"`
}
