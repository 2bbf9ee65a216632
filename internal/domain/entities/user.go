package entities

import (
	"time"
)

// User represents a registered customer
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GetID implements the Identifiable interface
func (u User) GetID() string { return u.ID }

// GetCreatedAt implements the Identifiable interface
func (u User) GetCreatedAt() time.Time { return u.CreatedAt }
