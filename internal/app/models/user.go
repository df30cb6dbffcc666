package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	ProfilePhoto *string   `json:"profile_photo,omitempty" db:"profile_photo"` // URL produced by the upload collaborator
	Role         RoleType  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserIdentity is the public slice of a user that other stores join against
type UserIdentity struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ProfilePhoto *string `json:"profile_photo"`
}

// UnknownIdentity stands in for a user id whose row is gone.
func UnknownIdentity(id int64) *UserIdentity {
	return &UserIdentity{ID: id, Name: UnknownUserName}
}
